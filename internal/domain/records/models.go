package records

import (
	"fmt"
	"time"

	"emprof/internal/domain/docs"
	"emprof/internal/domain/validate"
)

// Type names a versioned identity document. Values double as the document
// tag used on fetch calls, so a type never has to be recovered from a
// reference by value comparison.
type Type string

const (
	TypePassport         Type = "passport"
	TypeVisaVisit        Type = "visa-visit"
	TypeVisaEmployment   Type = "visa-employment"
	TypeVisaSpouse       Type = "visa-spouse"
	TypeEmiratesID       Type = "emiratesId"
	TypeLabourCard       Type = "labourCard"
	TypeMedicalInsurance Type = "medicalInsurance"
	TypeDrivingLicense   Type = "drivingLicense"
)

func ParseType(raw string) (Type, error) {
	typ := Type(raw)
	if _, ok := typeSpecs[typ]; !ok {
		return "", fmt.Errorf("unknown record type %q", raw)
	}
	return typ, nil
}

func (t Type) Tag() docs.Tag {
	return docs.Tag(t)
}

func (t Type) Label() string {
	return typeSpecs[t].label
}

func AllTypes() []Type {
	return []Type{
		TypePassport, TypeVisaVisit, TypeVisaEmployment, TypeVisaSpouse,
		TypeEmiratesID, TypeLabourCard, TypeMedicalInsurance, TypeDrivingLicense,
	}
}

// Record is a dated identity document. Every type shares this shape; the
// type-specific extra fields (nationality, sponsor, provider, ...) live in
// Fields so one implementation serves all of them.
type Record struct {
	Type       Type              `json:"type"`
	Number     string            `json:"number,omitempty"`
	IssueDate  *time.Time        `json:"issueDate,omitempty"`
	ExpiryDate *time.Time        `json:"expiryDate,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
	Document   docs.Reference    `json:"document"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

func (r *Record) Field(name string) string {
	if r == nil || r.Fields == nil {
		return ""
	}
	return r.Fields[name]
}

// Draft is what the edit surface submits: dates as raw strings, a document
// that may be a fresh data-URL upload, an existing URL passed back, or absent
// when the persisted document is untouched. Number and the dates are pointers
// so an omitted field (untouched, keeps the persisted value) stays
// distinguishable from an explicitly blanked one, which is re-validated. A
// key in Fields that is present but blank clears the value the same way.
type Draft struct {
	Number     *string           `json:"number"`
	IssueDate  *string           `json:"issueDate"`
	ExpiryDate *string           `json:"expiryDate"`
	Fields     map[string]string `json:"fields"`
	Document   docs.Reference    `json:"document"`
}

// typeSpec drives the shared validator and the renew action for one record
// type.
type typeSpec struct {
	label string
	// extra validated fields beyond number/dates/document
	extra []validate.Field
	// fields kept when a renew clears the draft
	retainOnRenew []string
	requireIssue  bool
}

var typeSpecs = map[Type]typeSpec{
	TypePassport: {
		label: "Passport",
		extra: []validate.Field{
			{Name: "nationality", Label: "Nationality", Kind: validate.KindCountry},
			{Name: "placeOfIssue", Label: "Place of issue", Kind: validate.KindCountry},
		},
		retainOnRenew: []string{"nationality"},
		requireIssue:  true,
	},
	TypeVisaVisit: {
		label: "Visit visa",
		extra: []validate.Field{
			{Name: "sponsor", Label: "Sponsor", Kind: validate.KindText},
		},
		retainOnRenew: []string{"sponsor"},
	},
	TypeVisaEmployment: {
		label: "Employment visa",
		extra: []validate.Field{
			{Name: "sponsor", Label: "Sponsor", Kind: validate.KindText},
		},
		retainOnRenew: []string{"sponsor"},
	},
	TypeVisaSpouse: {
		label: "Spouse visa",
		extra: []validate.Field{
			{Name: "sponsor", Label: "Sponsor", Kind: validate.KindText},
		},
		retainOnRenew: []string{"sponsor"},
	},
	TypeEmiratesID: {
		label:        "Emirates ID",
		requireIssue: true,
	},
	TypeLabourCard: {
		label: "Labour card",
	},
	TypeMedicalInsurance: {
		label: "Medical insurance",
		extra: []validate.Field{
			{Name: "provider", Label: "Provider", Kind: validate.KindText},
		},
		retainOnRenew: []string{"provider"},
	},
	TypeDrivingLicense: {
		label: "Driving license",
		extra: []validate.Field{
			{Name: "placeOfIssue", Label: "Place of issue", Kind: validate.KindCountry},
		},
		requireIssue: true,
	},
}
