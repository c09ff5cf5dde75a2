package docs

import "strings"

const DefaultMimeType = "application/pdf"

// Tag identifies which document of an employee record a reference points at.
// Tags travel with every fetch and resolve call so a lazy reference never has
// to be matched back to its owning record by value comparison.
type Tag string

const (
	TagPassport         Tag = "passport"
	TagVisaVisit        Tag = "visa-visit"
	TagVisaEmployment   Tag = "visa-employment"
	TagVisaSpouse       Tag = "visa-spouse"
	TagEmiratesID       Tag = "emiratesId"
	TagLabourCard       Tag = "labourCard"
	TagMedicalInsurance Tag = "medicalInsurance"
	TagDrivingLicense   Tag = "drivingLicense"
	TagBankAttachment   Tag = "bankAttachment"
	TagOfferLetter      Tag = "offerLetter"
	TagSalaryOffer      Tag = "salaryOfferLetter"
)

func ValidTag(tag Tag) bool {
	switch tag {
	case TagPassport, TagVisaVisit, TagVisaEmployment, TagVisaSpouse,
		TagEmiratesID, TagLabourCard, TagMedicalInsurance, TagDrivingLicense,
		TagBankAttachment, TagOfferLetter, TagSalaryOffer:
		return true
	}
	return false
}

// Reference is a stored file attached to a record. At most one of InlineData
// and RemoteURL is the source of truth; legacy rows may carry only inline
// base64, newer rows only a URL, and a bare FileName marks a lazy reference
// whose content must be fetched on demand.
type Reference struct {
	InlineData string `json:"data,omitempty"`
	RemoteURL  string `json:"url,omitempty"`
	FileName   string `json:"name,omitempty"`
	MimeType   string `json:"mimeType,omitempty"`
}

// Present reports whether the reference claims a document at all.
func (r Reference) Present() bool {
	return r.RemoteURL != "" || r.InlineData != "" || r.FileName != ""
}

// Lazy reports whether only a file name is known, so content must be fetched
// from the backend by record identity and tag.
func (r Reference) Lazy() bool {
	return r.RemoteURL == "" && r.InlineData == "" && r.FileName != ""
}

// Mime returns the declared mime type, defaulting to application/pdf.
func (r Reference) Mime() string {
	if r.MimeType != "" {
		return r.MimeType
	}
	return DefaultMimeType
}

// IsAbsoluteURL reports whether value points at externally hosted content.
// Legacy rows sometimes store a URL in the inline-data column, so resolution
// checks the payload itself rather than trusting the column it came from.
func IsAbsoluteURL(value string) bool {
	return strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")
}
