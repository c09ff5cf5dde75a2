package salary

import "strings"

// Total recomputes the entry total from its components. Stored totals are
// never trusted: legacy rows may carry fuel allowance only as a labelled
// extra, so the sum has to be rebuilt wherever the entry is shown.
func (e HistoryEntry) Total() float64 {
	fuel := e.FuelAllowance
	if fuel == 0 {
		fuel = legacyFuelAllowance(e.Extras)
	}
	return e.Basic + e.HouseRentAllowance + e.VehicleAllowance + fuel + e.OtherAllowance
}

// legacyFuelAllowance recovers a fuel allowance filed under the free-text
// extras list by label substring.
func legacyFuelAllowance(extras []LabelledAmount) float64 {
	for _, extra := range extras {
		if strings.Contains(strings.ToLower(extra.Label), "fuel") {
			return extra.Amount
		}
	}
	return 0
}

// Ledger returns the display ledger: the stored entries with totals
// recomputed, or a single synthetic initial entry derived from the join date
// and current compensation when no history exists. The synthetic entry is
// display-only; persisting it is the caller's bug, flagged by IsInitial.
func Ledger(entries []HistoryEntry, comp Compensation) []HistoryEntry {
	if len(entries) == 0 {
		if initial, ok := syntheticInitial(comp); ok {
			return []HistoryEntry{initial}
		}
		return nil
	}
	out := make([]HistoryEntry, len(entries))
	for i, entry := range entries {
		entry.TotalSalary = entry.Total()
		out[i] = entry
	}
	return out
}

func syntheticInitial(comp Compensation) (HistoryEntry, bool) {
	if comp.Basic <= 0 || comp.DateOfJoining == nil {
		return HistoryEntry{}, false
	}
	entry := HistoryEntry{
		Month:              comp.DateOfJoining.Month().String(),
		FromDate:           *comp.DateOfJoining,
		Basic:              comp.Basic,
		HouseRentAllowance: comp.HouseRentAllowance,
		VehicleAllowance:   comp.VehicleAllowance,
		FuelAllowance:      comp.FuelAllowance,
		OtherAllowance:     comp.OtherAllowance,
		IsInitial:          true,
	}
	entry.TotalSalary = entry.Total()
	return entry, true
}
