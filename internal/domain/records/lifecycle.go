package records

import "time"

// State is the lifecycle position of a dated record. Active versus Expired is
// derived from the expiry date at read time and never stored, so a stale flag
// can never disagree with the clock.
type State string

const (
	StateAbsent   State = "absent"
	StateActive   State = "active"
	StateExpired  State = "expired"
	StateRenewing State = "renewing"
)

// StateAt derives the display state of a record.
func StateAt(rec *Record, now time.Time) State {
	if rec == nil || (rec.Number == "" && !rec.Document.Present()) {
		return StateAbsent
	}
	if rec.ExpiryDate != nil {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if rec.ExpiryDate.Before(today) {
			return StateExpired
		}
	}
	return StateActive
}

// RenewDraft starts a renewal: number, dates, and document are cleared so the
// user must supply fresh values, while cross-cutting fields such as
// nationality or sponsor carry over. The persisted record is untouched until
// the renewal draft is saved.
func RenewDraft(rec Record) Draft {
	// Cleared fields are explicit blanks, not omissions: saving the renewal
	// draft untouched fails validation instead of restoring the old values.
	draft := Draft{Number: new(string), IssueDate: new(string), ExpiryDate: new(string), Fields: map[string]string{}}
	for _, name := range typeSpecs[rec.Type].retainOnRenew {
		if value := rec.Field(name); value != "" {
			draft.Fields[name] = value
		}
	}
	return draft
}
