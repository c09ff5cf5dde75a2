package salary

import (
	"time"

	"emprof/internal/domain/docs"
)

// LabelledAmount is a legacy "additional allowances" line. Older rows kept
// fuel allowance here under a free-text label instead of a dedicated column.
type LabelledAmount struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// HistoryEntry is one row of the append-only salary ledger.
type HistoryEntry struct {
	ID                 string           `json:"id,omitempty"`
	Month              string           `json:"month"`
	FromDate           time.Time        `json:"fromDate"`
	ToDate             *time.Time       `json:"toDate,omitempty"`
	Basic              float64          `json:"basic"`
	HouseRentAllowance float64          `json:"houseRentAllowance"`
	VehicleAllowance   float64          `json:"vehicleAllowance"`
	FuelAllowance      float64          `json:"fuelAllowance"`
	OtherAllowance     float64          `json:"otherAllowance"`
	Extras             []LabelledAmount `json:"extras,omitempty"`
	TotalSalary        float64          `json:"totalSalary"`
	OfferLetter        docs.Reference   `json:"offerLetter"`
	// IsInitial marks the synthetic entry derived from the employee's join
	// date and current compensation. It exists only in ledger views and must
	// never be persisted.
	IsInitial bool `json:"isInitial,omitempty"`
}

// Compensation is the employee's current base pay, used to synthesize an
// initial ledger entry when no explicit history exists.
type Compensation struct {
	Basic              float64
	HouseRentAllowance float64
	VehicleAllowance   float64
	FuelAllowance      float64
	OtherAllowance     float64
	DateOfJoining      *time.Time
}
