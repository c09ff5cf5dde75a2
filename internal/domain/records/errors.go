package records

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrSaveFailed     = errors.New("record save failed")
)
