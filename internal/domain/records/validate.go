package records

import (
	"strings"
	"time"

	"emprof/internal/domain/docs"
	"emprof/internal/domain/validate"
)

// ValidateDraft runs the shared validation protocol for one record type.
// Requiredness is conditioned on what the server already holds: a field that
// is persisted may be omitted on an edit, a field that is not must be
// supplied. Explicitly blanking a persisted field counts as an edit of that
// field and is re-validated. The returned map is empty when the draft may be
// submitted.
func ValidateDraft(typ Type, draft Draft, existing *Record, now time.Time) validate.ErrorMap {
	spec := typeSpecs[typ]
	errs := validate.ErrorMap{}

	fields := []validate.Field{{Name: "number", Label: spec.label + " number", Kind: validate.KindIdentifier}}
	fields = append(fields, spec.extra...)

	draftValues := map[string]*string{"number": draft.Number}
	existingValues := map[string]string{}
	for name, value := range draft.Fields {
		value := value
		draftValues[name] = &value
	}
	if existing != nil {
		existingValues["number"] = existing.Number
		for name, value := range existing.Fields {
			existingValues[name] = value
		}
	}
	errs = validate.Merge(errs, validate.Form(draftValues, existingValues, fields))

	bounds := validate.DateBounds{
		RequireIssue:  spec.requireIssue && (existing == nil || existing.IssueDate == nil || isBlanked(draft.IssueDate)),
		RequireExpiry: existing == nil || existing.ExpiryDate == nil || isBlanked(draft.ExpiryDate),
	}
	dateErrs := validate.DateRange(stringValue(draft.IssueDate), stringValue(draft.ExpiryDate), bounds, now)
	if dateErrs.Issue != "" {
		errs = validate.Merge(errs, validate.ErrorMap{"issueDate": dateErrs.Issue})
	}
	if dateErrs.Expiry != "" {
		errs = validate.Merge(errs, validate.ErrorMap{"expiryDate": dateErrs.Expiry})
	}

	var existingDoc docs.Reference
	if existing != nil {
		existingDoc = existing.Document
	}
	errs = validate.Merge(errs, validate.FileRequired("document", spec.label+" document", draft.Document, existingDoc))

	if isFreshUpload(draft.Document) {
		errs = validate.Merge(errs, validate.Upload(draft.Document.FileName, draft.Document.MimeType, decodedSize(draft.Document.InlineData)))
	}

	return errs
}

// isFreshUpload reports whether the draft document is new content to push to
// remote storage, as opposed to an existing URL echoed back or an untouched
// persisted document.
func isFreshUpload(ref docs.Reference) bool {
	return ref.InlineData != "" && !docs.IsAbsoluteURL(ref.InlineData)
}

func stringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// isBlanked reports whether a draft field was submitted as an explicit blank,
// as opposed to omitted entirely.
func isBlanked(p *string) bool {
	return p != nil && strings.TrimSpace(*p) == ""
}

// decodedSize estimates the byte size of a base64 payload, ignoring any
// data-URL header.
func decodedSize(data string) int64 {
	if comma := strings.Index(data, ","); comma >= 0 && strings.HasPrefix(data, "data:") {
		data = data[comma+1:]
	}
	return int64(len(data)) * 3 / 4
}
