package hashtag

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrSegmentCount  = errors.New("wrong segment count")
	ErrEmptyCategory = errors.New("empty category")
	ErrEmptyName     = errors.New("empty name")
	ErrDateFormat    = errors.New("malformed date")
	ErrDateRange     = errors.New("date component out of range")
	ErrInvalidDate   = errors.New("invalid date")
	ErrStartAfterEnd = errors.New("start after end")
)

// FormatError reports text that does not follow the hashtag grammar.
type FormatError struct {
	Input string
	Err   error
}

func newFormatError(input string, err error) *FormatError {
	return &FormatError{Input: input, Err: err}
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("hashtag: %v: %q", e.Err, e.Input)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Cause lets errors.Cause reach the reason.
func (e *FormatError) Cause() error { return e.Err }

// IsFormatError reports whether err (or what it wraps) is a *FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
