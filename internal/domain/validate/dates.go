package validate

import (
	"strings"
	"time"
)

// ParseDate accepts RFC3339 or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

type DateBounds struct {
	RequireIssue  bool
	RequireExpiry bool
}

type DateErrors struct {
	Issue  string `json:"issueDate,omitempty"`
	Expiry string `json:"expiryDate,omitempty"`
}

func (e DateErrors) Empty() bool {
	return e.Issue == "" && e.Expiry == ""
}

// DateRange validates an issue/expiry pair against the clock and against each
// other. The cross-field ordering check runs whenever both dates parse, so
// editing either field clears or sets the expiry error consistently.
func DateRange(issueDate, expiryDate string, bounds DateBounds, now time.Time) DateErrors {
	var out DateErrors
	today := truncateToDay(now)

	var issue, expiry time.Time
	issueParsed, expiryParsed := false, false

	issueDate = strings.TrimSpace(issueDate)
	expiryDate = strings.TrimSpace(expiryDate)

	if issueDate == "" {
		if bounds.RequireIssue {
			out.Issue = "Issue date is required"
		}
	} else if parsed, err := ParseDate(issueDate); err != nil {
		out.Issue = "must be a valid date in YYYY-MM-DD format"
	} else {
		issue, issueParsed = truncateToDay(parsed), true
		if !issue.Before(today) {
			out.Issue = "Issue date must be a past date"
		}
	}

	if expiryDate == "" {
		if bounds.RequireExpiry {
			out.Expiry = "Expiry date is required"
		}
	} else if parsed, err := ParseDate(expiryDate); err != nil {
		out.Expiry = "must be a valid date in YYYY-MM-DD format"
	} else {
		expiry, expiryParsed = truncateToDay(parsed), true
		if !expiry.After(today) {
			out.Expiry = "Expiry date must be a future date"
		}
	}

	// Ordering is checked whenever both dates parse and wins over the
	// clock-based expiry message, so the user is told about the relationship
	// between the two fields rather than about each in isolation.
	if issueParsed && expiryParsed && !expiry.After(issue) {
		out.Expiry = "Expiry date must be later than the issue date"
	}

	return out
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
