package arxiv

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (possibly wrapped) by the parsers in this package.
// Use errors.Is to test for them.
var (
	// ErrSyntax indicates an identifier that does not follow arXiv:YYMM.number{vV}.
	ErrSyntax = errors.New("syntax error: an arXiv identifier must look like arXiv:YYMM.number{vV}")

	// ErrInvalidYear indicates a year outside [MinYear, MaxYear].
	ErrInvalidYear = errors.New("year must be between 2007 and 2099")

	// ErrInvalidMonth indicates a month outside [1, 12].
	ErrInvalidMonth = errors.New("month must be between 1 and 12")

	// ErrInvalidID indicates a sequence number that is not 4 or 5 digits long.
	ErrInvalidID = errors.New("number must be 4 or 5 digits")

	// ErrInvalidCategory indicates an unknown archive, a subject that is not valid
	// for its archive, or a malformed category token.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidArxivID is the stamp error kind for a bad leading identifier.
	ErrInvalidArxivID = errors.New("invalid arXiv identifier")

	// ErrInvalidDate indicates a stamp date that is not "D Mon YYYY".
	ErrInvalidDate = errors.New("invalid date")

	// ErrNotEnoughComponents indicates a stamp without anything after the identifier.
	ErrNotEnoughComponents = errors.New("not enough components")

	// ErrNotFound indicates that the ledger holds no stamp for an identifier.
	ErrNotFound = errors.New("not found")
)

// IDError records a failed identifier parse.
type IDError struct {
	Input string
	Err   error
}

// Error implements the error interface.
func (e *IDError) Error() string {
	return fmt.Sprintf("parse arXiv id %q: %v", e.Input, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *IDError) Unwrap() error {
	return e.Err
}

// CategoryError records a failed category parse or validation.
type CategoryError struct {
	Input  string
	Reason string
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	return fmt.Sprintf("invalid category %q: %s", e.Input, e.Reason)
}

// Unwrap returns ErrInvalidCategory for use with errors.Is.
func (e *CategoryError) Unwrap() error {
	return ErrInvalidCategory
}

// DateError records which component of a stamp date could not be parsed.
// Component is one of "day", "month", "year" or "date" for a structurally
// broken value.
type DateError struct {
	Input     string
	Component string
}

// Error implements the error interface.
func (e *DateError) Error() string {
	return fmt.Sprintf("invalid %s in date %q", e.Component, e.Input)
}

// Unwrap returns ErrInvalidDate for use with errors.Is.
func (e *DateError) Unwrap() error {
	return ErrInvalidDate
}

// StampError reports why a stamp line failed to parse. Kind is one of
// ErrInvalidArxivID, ErrInvalidCategory, ErrInvalidDate or
// ErrNotEnoughComponents; Err carries the underlying cause when there is one.
type StampError struct {
	Kind error
	Err  error
}

// Error implements the error interface.
func (e *StampError) Error() string {
	if e.Err == nil {
		return "parse stamp: " + e.Kind.Error()
	}
	return fmt.Sprintf("parse stamp: %v: %v", e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause, so errors.Is matches either.
func (e *StampError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
