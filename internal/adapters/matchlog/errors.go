package matchlog

import (
	"errors"
	"fmt"
)

// Sentinel kinds for match log errors.
var (
	ErrNotFound        = errors.New("match log not found")
	ErrMissingHeader   = errors.New("match log has no header row")
	ErrMissingColumn   = errors.New("required column missing")
	ErrMalformedRecord = errors.New("malformed record")
)

// RowError reports a problem with a single data row. Row is 1-based and
// excludes the header.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("malformed record at row %d: %v", e.Row, e.Err)
}

// Unwrap exposes both ErrMalformedRecord and the underlying cause.
func (e *RowError) Unwrap() []error {
	return []error{ErrMalformedRecord, e.Err}
}
