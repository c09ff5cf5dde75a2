package salary

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func joined(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestTotalRecomputed(t *testing.T) {
	entry := HistoryEntry{
		Basic:              8000,
		HouseRentAllowance: 3000,
		VehicleAllowance:   1000,
		FuelAllowance:      500,
		OtherAllowance:     250,
		TotalSalary:        1, // stored totals are never trusted
	}
	if got := entry.Total(); got != 12750 {
		t.Fatalf("got %v", got)
	}
}

func TestTotalLegacyFuelExtra(t *testing.T) {
	entry := HistoryEntry{
		Basic:              8000,
		HouseRentAllowance: 3000,
		Extras:             []LabelledAmount{{Label: "Fuel Allowance", Amount: 600}},
	}
	if got := entry.Total(); got != 11600 {
		t.Fatalf("got %v", got)
	}
}

func TestTotalDedicatedFuelWinsOverExtra(t *testing.T) {
	entry := HistoryEntry{
		Basic:         8000,
		FuelAllowance: 500,
		Extras:        []LabelledAmount{{Label: "fuel", Amount: 600}},
	}
	if got := entry.Total(); got != 8500 {
		t.Fatalf("got %v", got)
	}
}

func TestLedgerRecomputesStoredEntries(t *testing.T) {
	entries := []HistoryEntry{
		{Basic: 9000, HouseRentAllowance: 4000, TotalSalary: 1},
		{Basic: 8000, HouseRentAllowance: 3500, TotalSalary: 2},
	}
	out := Ledger(entries, Compensation{})
	if len(out) != 2 {
		t.Fatalf("got %d entries", len(out))
	}
	if out[0].TotalSalary != 13000 || out[1].TotalSalary != 11500 {
		t.Fatalf("totals not recomputed: %+v", out)
	}
	if out[0].IsInitial || out[1].IsInitial {
		t.Fatal("stored entries are never synthetic")
	}
}

func TestLedgerSynthesizesInitialEntry(t *testing.T) {
	comp := Compensation{
		Basic:              10000,
		HouseRentAllowance: 4000,
		FuelAllowance:      800,
		DateOfJoining:      joined(2021, time.September, 6),
	}
	out := Ledger(nil, comp)
	if len(out) != 1 {
		t.Fatalf("got %d entries", len(out))
	}
	entry := out[0]
	if !entry.IsInitial {
		t.Fatal("synthetic entry must be flagged")
	}
	if entry.Month != "September" {
		t.Fatalf("got month %q", entry.Month)
	}
	if !entry.FromDate.Equal(*comp.DateOfJoining) {
		t.Fatalf("got from date %v", entry.FromDate)
	}
	if entry.TotalSalary != 14800 {
		t.Fatalf("got total %v", entry.TotalSalary)
	}
}

func TestLedgerNoSyntheticWithoutCompensation(t *testing.T) {
	if out := Ledger(nil, Compensation{DateOfJoining: joined(2021, time.September, 6)}); out != nil {
		t.Fatalf("zero basic must not synthesize, got %+v", out)
	}
	if out := Ledger(nil, Compensation{Basic: 10000}); out != nil {
		t.Fatalf("missing join date must not synthesize, got %+v", out)
	}
}

func TestAppendRejectsSyntheticEntry(t *testing.T) {
	store := NewStore(nil)
	_, err := store.Append(context.Background(), "emp-1", HistoryEntry{IsInitial: true, Basic: 10000})
	if !errors.Is(err, ErrSyntheticEntry) {
		t.Fatalf("got %v", err)
	}
}

func TestLetterWritesPDF(t *testing.T) {
	dir := t.TempDir()
	path, err := Letter(dir, LetterData{
		EmployeeName:   "Asha Nair",
		EmployeeNumber: "EMP-042",
		Nationality:    "India",
		DateOfJoining:  joined(2021, time.September, 6),
		Entry:          HistoryEntry{Basic: 10000, HouseRentAllowance: 4000},
	})
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("empty PDF written")
	}
}
