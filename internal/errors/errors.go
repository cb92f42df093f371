package errors

import (
	"fmt"
	"time"
)

// MalformedRecordError reports a raw auction row whose required field could
// not be parsed. The run aborts: downstream densification cannot tolerate a
// partial record.
type MalformedRecordError struct {
	Cusip string
	Field string
	Value string
	Err   error
}

// Error implements the error interface
func (e *MalformedRecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed auction record for cusip %s: field %q value %q: %v", e.Cusip, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("malformed auction record for cusip %s: field %q value %q", e.Cusip, e.Field, e.Value)
}

// Unwrap allows errors.Is and errors.As to reach the parse failure
func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// NewMalformedRecord creates a MalformedRecordError for the given field
func NewMalformedRecord(cusip, field, value string, err error) *MalformedRecordError {
	return &MalformedRecordError{Cusip: cusip, Field: field, Value: value, Err: err}
}

// UnknownTenorError reports a security term outside the fixed tenor
// enumeration. Surfaced immediately rather than dropping the security, since
// an unclassified cusip would silently corrupt vintage grouping.
type UnknownTenorError struct {
	Cusip string
	Term  string
}

// Error implements the error interface
func (e *UnknownTenorError) Error() string {
	return fmt.Sprintf("unknown tenor for cusip %s: security term %q does not match any enumerated tenor", e.Cusip, e.Term)
}

// NewUnknownTenor creates an UnknownTenorError
func NewUnknownTenor(cusip, term string) *UnknownTenorError {
	return &UnknownTenorError{Cusip: cusip, Term: term}
}

// InvalidRangeError reports a date range whose end precedes its start.
// Rejected before any processing.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

// Error implements the error interface
func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: end %s before start %s", e.End.Format("2006-01-02"), e.Start.Format("2006-01-02"))
}

// NewInvalidRange creates an InvalidRangeError
func NewInvalidRange(start, end time.Time) *InvalidRangeError {
	return &InvalidRangeError{Start: start, End: end}
}
