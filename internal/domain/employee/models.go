package employee

import (
	"time"

	"emprof/internal/domain/docs"
)

type Profile struct {
	ID             string     `json:"id"`
	EmployeeNumber string     `json:"employeeNumber"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone,omitempty"`
	Nationality    string     `json:"nationality,omitempty"`
	Designation    string     `json:"designation,omitempty"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	DateOfJoining  *time.Time `json:"dateOfJoining,omitempty"`

	// Current compensation; the source of the synthetic initial ledger entry
	// when no salary history exists.
	Basic              float64 `json:"basic,omitempty"`
	HouseRentAllowance float64 `json:"houseRentAllowance,omitempty"`
	VehicleAllowance   float64 `json:"vehicleAllowance,omitempty"`
	FuelAllowance      float64 `json:"fuelAllowance,omitempty"`
	OtherAllowance     float64 `json:"otherAllowance,omitempty"`

	BankName       string         `json:"bankName,omitempty"`
	BankAccount    string         `json:"bankAccount,omitempty"`
	IBAN           string         `json:"iban,omitempty"`
	BankAttachment docs.Reference `json:"bankAttachment"`
	OfferLetter    docs.Reference `json:"offerLetter"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p Profile) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// BasicDetails is the basic-details section of the profile view, returned
// under "basicDetails" after a save.
type BasicDetails struct {
	ID             string     `json:"id"`
	EmployeeNumber string     `json:"employeeNumber"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone,omitempty"`
	Nationality    string     `json:"nationality,omitempty"`
	Designation    string     `json:"designation,omitempty"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	DateOfJoining  *time.Time `json:"dateOfJoining,omitempty"`
}

// BankDetails is the bank section of the profile view, returned under
// "bankDetails" after a save.
type BankDetails struct {
	BankName       string         `json:"bankName,omitempty"`
	BankAccount    string         `json:"bankAccount,omitempty"`
	IBAN           string         `json:"iban,omitempty"`
	BankAttachment docs.Reference `json:"bankAttachment"`
}

func (p Profile) BasicDetails() BasicDetails {
	return BasicDetails{
		ID:             p.ID,
		EmployeeNumber: p.EmployeeNumber,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		Phone:          p.Phone,
		Nationality:    p.Nationality,
		Designation:    p.Designation,
		DateOfBirth:    p.DateOfBirth,
		DateOfJoining:  p.DateOfJoining,
	}
}

func (p Profile) BankDetails() BankDetails {
	return BankDetails{
		BankName:       p.BankName,
		BankAccount:    p.BankAccount,
		IBAN:           p.IBAN,
		BankAttachment: p.BankAttachment,
	}
}

// BasicDraft carries the editable basic-details fields. Pointers keep an
// omitted field (untouched) apart from an explicitly blanked one.
type BasicDraft struct {
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Nationality   *string `json:"nationality"`
	Designation   *string `json:"designation"`
	DateOfBirth   *string `json:"dateOfBirth"`
	DateOfJoining *string `json:"dateOfJoining"`
}

// BankDraft carries the editable bank-account fields plus an optional
// attachment.
type BankDraft struct {
	BankName    *string        `json:"bankName"`
	BankAccount *string        `json:"bankAccount"`
	IBAN        *string        `json:"iban"`
	Attachment  docs.Reference `json:"attachment"`
}
