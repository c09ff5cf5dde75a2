package records

import (
	"strings"
	"testing"
	"time"

	"emprof/internal/domain/docs"
)

func strPtr(s string) *string {
	return &s
}

func TestValidateDraftNewPassport(t *testing.T) {
	errs := ValidateDraft(TypePassport, Draft{}, nil, testNow)

	for _, field := range []string{"number", "nationality", "placeOfIssue", "issueDate", "expiryDate", "document"} {
		if errs[field] == "" {
			t.Fatalf("expected error for %s, got %+v", field, errs)
		}
	}
}

func TestValidateDraftExistingRecordAllowsOmissions(t *testing.T) {
	existing := &Record{
		Type:       TypePassport,
		Number:     "P123",
		IssueDate:  dateAt(2015, time.March, 1),
		ExpiryDate: dateAt(2027, time.March, 1),
		Fields:     map[string]string{"nationality": "India", "placeOfIssue": "India"},
		Document:   docs.Reference{FileName: "passport.pdf"},
	}

	errs := ValidateDraft(TypePassport, Draft{}, existing, testNow)
	if !errs.Empty() {
		t.Fatalf("everything is persisted, got %+v", errs)
	}
}

func TestValidateDraftRejectsNewlyBlankedNumber(t *testing.T) {
	existing := &Record{
		Type:       TypePassport,
		Number:     "P123",
		IssueDate:  dateAt(2015, time.March, 1),
		ExpiryDate: dateAt(2027, time.March, 1),
		Fields:     map[string]string{"nationality": "India", "placeOfIssue": "India"},
		Document:   docs.Reference{FileName: "passport.pdf"},
	}

	errs := ValidateDraft(TypePassport, Draft{Number: strPtr("")}, existing, testNow)
	if errs["number"] != "Passport number is required" {
		t.Fatalf("blanking the persisted number must fail, got %+v", errs)
	}
}

func TestValidateDraftRejectsNewlyBlankedField(t *testing.T) {
	existing := &Record{
		Type:       TypePassport,
		Number:     "P123",
		IssueDate:  dateAt(2015, time.March, 1),
		ExpiryDate: dateAt(2027, time.March, 1),
		Fields:     map[string]string{"nationality": "India", "placeOfIssue": "India"},
		Document:   docs.Reference{FileName: "passport.pdf"},
	}

	errs := ValidateDraft(TypePassport, Draft{Fields: map[string]string{"nationality": ""}}, existing, testNow)
	if errs["nationality"] != "Nationality is required" {
		t.Fatalf("blanking a persisted field must fail, got %+v", errs)
	}
	if errs["placeOfIssue"] != "" {
		t.Fatalf("untouched fields stay waived, got %+v", errs)
	}
}

func TestValidateDraftRejectsNewlyBlankedExpiry(t *testing.T) {
	existing := &Record{
		Type:       TypeLabourCard,
		Number:     "LC1",
		ExpiryDate: dateAt(2027, time.March, 1),
		Document:   docs.Reference{FileName: "labour-card.pdf"},
	}

	errs := ValidateDraft(TypeLabourCard, Draft{ExpiryDate: strPtr("")}, existing, testNow)
	if errs["expiryDate"] == "" {
		t.Fatalf("blanking the persisted expiry must fail, got %+v", errs)
	}
}

func TestValidateDraftLazyDocumentSatisfiesRequirement(t *testing.T) {
	existing := &Record{
		Type:       TypeLabourCard,
		Number:     "LC1",
		ExpiryDate: dateAt(2027, time.March, 1),
		Document:   docs.Reference{FileName: "labour-card.pdf"},
	}
	errs := ValidateDraft(TypeLabourCard, Draft{}, existing, testNow)
	if errs["document"] != "" {
		t.Fatalf("lazy reference should satisfy, got %q", errs["document"])
	}
}

func TestValidateDraftValidSubmission(t *testing.T) {
	draft := Draft{
		Number:     strPtr("P9876543"),
		IssueDate:  strPtr("2020-01-15"),
		ExpiryDate: strPtr("2030-01-14"),
		Fields:     map[string]string{"nationality": "India", "placeOfIssue": "United Arab Emirates"},
		Document:   docs.Reference{InlineData: "data:application/pdf;base64,aGVsbG8=", FileName: "passport.pdf", MimeType: "application/pdf"},
	}
	errs := ValidateDraft(TypePassport, draft, nil, testNow)
	if !errs.Empty() {
		t.Fatalf("got %+v", errs)
	}
}

func TestValidateDraftIssueDateOptionalPerType(t *testing.T) {
	draft := Draft{
		Number:     strPtr("V1234"),
		ExpiryDate: strPtr("2026-01-01"),
		Fields:     map[string]string{"sponsor": "Acme LLC"},
		Document:   docs.Reference{InlineData: "data:application/pdf;base64,aGVsbG8=", FileName: "visa.pdf"},
	}
	errs := ValidateDraft(TypeVisaEmployment, draft, nil, testNow)
	if errs["issueDate"] != "" {
		t.Fatalf("visas do not require an issue date, got %q", errs["issueDate"])
	}
}

func TestValidateDraftFreshUploadChecked(t *testing.T) {
	oversize := strings.Repeat("A", 8*1024*1024)
	draft := Draft{
		Number:     strPtr("E123"),
		IssueDate:  strPtr("2020-01-15"),
		ExpiryDate: strPtr("2030-01-14"),
		Document:   docs.Reference{InlineData: oversize, FileName: "id.pdf"},
	}
	errs := ValidateDraft(TypeEmiratesID, draft, nil, testNow)
	if errs["file"] != "File must be 5MB or smaller" {
		t.Fatalf("got %q", errs["file"])
	}
}

func TestValidateDraftEchoedURLNotTreatedAsUpload(t *testing.T) {
	draft := Draft{
		Number:     strPtr("E123"),
		IssueDate:  strPtr("2020-01-15"),
		ExpiryDate: strPtr("2030-01-14"),
		Document:   docs.Reference{InlineData: "https://cdn.example.com/id.bin", FileName: "id.bin"},
	}
	errs := ValidateDraft(TypeEmiratesID, draft, nil, testNow)
	if errs["file"] != "" {
		t.Fatalf("echoed URL must skip upload checks, got %q", errs["file"])
	}
}
