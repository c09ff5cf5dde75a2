package records

import (
	"testing"
	"time"

	"emprof/internal/domain/docs"
)

var testNow = time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)

func dateAt(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestStateAtAbsent(t *testing.T) {
	if got := StateAt(nil, testNow); got != StateAbsent {
		t.Fatalf("nil record: got %s", got)
	}
	empty := &Record{Type: TypePassport}
	if got := StateAt(empty, testNow); got != StateAbsent {
		t.Fatalf("empty record: got %s", got)
	}
}

func TestStateAtActive(t *testing.T) {
	rec := &Record{Type: TypePassport, Number: "P123", ExpiryDate: dateAt(2026, time.January, 1)}
	if got := StateAt(rec, testNow); got != StateActive {
		t.Fatalf("got %s", got)
	}
}

func TestStateAtExpired(t *testing.T) {
	rec := &Record{Type: TypePassport, Number: "P123", ExpiryDate: dateAt(2025, time.January, 1)}
	if got := StateAt(rec, testNow); got != StateExpired {
		t.Fatalf("got %s", got)
	}
}

func TestStateAtExpiresToday(t *testing.T) {
	// a record expiring today is still active; only a strictly past expiry
	// flips the state
	rec := &Record{Type: TypePassport, Number: "P123", ExpiryDate: dateAt(2025, time.June, 15)}
	if got := StateAt(rec, testNow); got != StateActive {
		t.Fatalf("got %s", got)
	}
}

func TestStateAtNoExpiryDate(t *testing.T) {
	rec := &Record{Type: TypeLabourCard, Number: "LC1"}
	if got := StateAt(rec, testNow); got != StateActive {
		t.Fatalf("got %s", got)
	}
}

func TestStateAtDocumentOnly(t *testing.T) {
	rec := &Record{Type: TypePassport, Document: docs.Reference{FileName: "passport.pdf"}}
	if got := StateAt(rec, testNow); got != StateActive {
		t.Fatalf("a document without a number is still a record, got %s", got)
	}
}

func TestRenewDraftClearsDatedFields(t *testing.T) {
	rec := Record{
		Type:       TypePassport,
		Number:     "P123",
		IssueDate:  dateAt(2015, time.March, 1),
		ExpiryDate: dateAt(2025, time.March, 1),
		Fields:     map[string]string{"nationality": "India", "placeOfIssue": "India"},
		Document:   docs.Reference{RemoteURL: "https://cdn.example.com/p.pdf"},
	}

	draft := RenewDraft(rec)
	for name, field := range map[string]*string{"number": draft.Number, "issueDate": draft.IssueDate, "expiryDate": draft.ExpiryDate} {
		if field == nil || *field != "" {
			t.Fatalf("renewal must clear %s to an explicit blank, got %+v", name, draft)
		}
	}
	if draft.Document.Present() {
		t.Fatal("renewal must clear the document")
	}
	if draft.Fields["nationality"] != "India" {
		t.Fatalf("nationality should carry over, got %q", draft.Fields["nationality"])
	}
	if _, kept := draft.Fields["placeOfIssue"]; kept {
		t.Fatal("place of issue should not carry over")
	}
}

func TestRenewDraftResubmittedUntouchedFailsValidation(t *testing.T) {
	rec := Record{
		Type:       TypePassport,
		Number:     "P123",
		IssueDate:  dateAt(2015, time.March, 1),
		ExpiryDate: dateAt(2025, time.March, 1),
		Fields:     map[string]string{"nationality": "India"},
		Document:   docs.Reference{RemoteURL: "https://cdn.example.com/p.pdf"},
	}

	// Saving the renewal draft without fresh values must not silently restore
	// the old record.
	errs := ValidateDraft(TypePassport, RenewDraft(rec), &rec, testNow)
	for _, field := range []string{"number", "expiryDate"} {
		if errs[field] == "" {
			t.Fatalf("expected error for %s, got %+v", field, errs)
		}
	}
}

func TestRenewDraftVisaKeepsSponsor(t *testing.T) {
	rec := Record{
		Type:   TypeVisaEmployment,
		Number: "V42",
		Fields: map[string]string{"sponsor": "Acme LLC"},
	}
	draft := RenewDraft(rec)
	if draft.Fields["sponsor"] != "Acme LLC" {
		t.Fatalf("got %q", draft.Fields["sponsor"])
	}
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("emiratesId")
	if err != nil {
		t.Fatal(err)
	}
	if typ != TypeEmiratesID {
		t.Fatalf("got %s", typ)
	}
	if _, err := ParseType("rocketLicense"); err == nil {
		t.Fatal("unknown type should fail")
	}
}
