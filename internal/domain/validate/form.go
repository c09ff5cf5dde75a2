package validate

import (
	"strconv"
	"strings"

	"emprof/internal/domain/docs"
)

// ErrorMap carries field-scoped validation failures. Validation never returns
// an error value; callers refuse to submit while the map is non-empty.
type ErrorMap map[string]string

func (m ErrorMap) Empty() bool {
	return len(m) == 0
}

type Kind int

const (
	KindText Kind = iota
	// KindIdentifier accepts letters and digits only.
	KindIdentifier
	// KindCountry is checked against the closed country list.
	KindCountry
	// KindNumeric is sanitized to [0-9.] and must parse as a non-negative
	// decimal.
	KindNumeric
)

type Field struct {
	Name  string
	Label string
	Kind  Kind
}

// Form validates a draft against per-field rules. A draft field that is
// absent (nil) is untouched and keeps its persisted value, so its required
// check is waived while the server holds one. A field that is present but
// blank was newly blanked by the user and is re-validated: it fails the
// required check even when a persisted value exists.
func Form(draft map[string]*string, existing map[string]string, fields []Field) ErrorMap {
	out := ErrorMap{}
	for _, field := range fields {
		raw := draft[field.Name]
		if raw == nil {
			if strings.TrimSpace(existing[field.Name]) == "" {
				out[field.Name] = field.Label + " is required"
			}
			continue
		}
		value := strings.TrimSpace(*raw)
		if value == "" {
			out[field.Name] = field.Label + " is required"
			continue
		}
		switch field.Kind {
		case KindIdentifier:
			if !alphanumeric(value) {
				out[field.Name] = field.Label + " must contain only letters and numbers"
			}
		case KindCountry:
			if !ValidCountry(value) {
				out[field.Name] = field.Label + " must be a valid country"
			}
		case KindNumeric:
			if _, ok := ParseAmount(value); !ok {
				out[field.Name] = field.Label + " must be a non-negative number"
			}
		}
	}
	return out
}

// FileRequired enforces "document required" for a record draft. Any existing
// reference satisfies it, including a lazy one that carries only a file name:
// requiredness is about the record's claim to a document, not about whether
// the backend copy is reachable right now. Reachability failures surface at
// view time instead.
func FileRequired(field, label string, draft, existing docs.Reference) ErrorMap {
	if draft.Present() || existing.Present() {
		return ErrorMap{}
	}
	return ErrorMap{field: label + " is required"}
}

// SanitizeNumber strips every character outside [0-9.] from raw user input.
func SanitizeNumber(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseAmount sanitizes and parses a non-negative decimal.
func ParseAmount(raw string) (float64, bool) {
	cleaned := SanitizeNumber(raw)
	if cleaned == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || parsed < 0 {
		return 0, false
	}
	return parsed, true
}

func alphanumeric(value string) bool {
	for _, r := range value {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !isLetter && !isDigit {
			return false
		}
	}
	return len(value) > 0
}

// Merge folds src into dst without overwriting earlier failures.
func Merge(dst ErrorMap, src ErrorMap) ErrorMap {
	if dst == nil {
		dst = ErrorMap{}
	}
	for field, message := range src {
		if _, taken := dst[field]; !taken {
			dst[field] = message
		}
	}
	return dst
}
