// Package apperr defines the closed set of failures the API reports to
// clients and the classifier that reduces any error to a status code and a
// message.  Lower layers wrap their causes in one of these variants; the
// HTTP layer only ever sees the normalized form produced by Classify.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNoMatches is the cause of a GeocodingError when the provider answered
// but found nothing for the address.
var ErrNoMatches = errors.New("geocoder returned no matches")

// IdentifierFormatError reports an identifier that cannot address any record,
// either because it is malformed or because nothing is stored under it.
type IdentifierFormatError struct {
	Value string
	Cause error
}

func (e *IdentifierFormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid identifier %q: %v", e.Value, e.Cause)
	}
	return fmt.Sprintf("invalid identifier %q", e.Value)
}

func (e *IdentifierFormatError) Unwrap() error { return e.Cause }

// UniquenessError reports a write that collides with a unique field of an
// existing record.
type UniquenessError struct {
	Field string
	Cause error
}

func (e *UniquenessError) Error() string {
	if e.Field == "" {
		return "duplicate value for unique field"
	}
	return fmt.Sprintf("duplicate value for unique field %s", e.Field)
}

func (e *UniquenessError) Unwrap() error { return e.Cause }

// FieldViolation is one unmet field constraint with its configured message.
type FieldViolation struct {
	Field   string
	Message string
}

// ValidationError reports one or more unmet field constraints.
type ValidationError struct {
	Fields []FieldViolation
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message()
}

// Message joins every violation message in declaration order.
func (e *ValidationError) Message() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, ", ")
}

// Add appends a violation.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldViolation{Field: field, Message: message})
}

// GeocodingError reports an address that could not be enriched into a
// location.  The triggering write is abandoned.
type GeocodingError struct {
	Address string
	Cause   error
}

func (e *GeocodingError) Error() string {
	return fmt.Sprintf("geocode %q: %v", e.Address, e.Cause)
}

func (e *GeocodingError) Unwrap() error { return e.Cause }

// NoMatches reports whether the provider answered with an empty result.
func (e *GeocodingError) NoMatches() bool { return errors.Is(e.Cause, ErrNoMatches) }

// CascadeError reports that dependent courses could not be removed before
// their bootcamp.  The bootcamp itself is left in place.
type CascadeError struct {
	BootcampID string
	Cause      error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("cascade delete for bootcamp %s: %v", e.BootcampID, e.Cause)
}

func (e *CascadeError) Unwrap() error { return e.Cause }

// UnclassifiedError is any other failure.  Status and Message are what the
// client sees; both fall back to 500 and "Server Error" when unset.
type UnclassifiedError struct {
	Status  int
	Message string
	Cause   error
}

func (e *UnclassifiedError) Error() string {
	switch {
	case e.Cause != nil && e.Message != "":
		return e.Message + ": " + e.Cause.Error()
	case e.Cause != nil:
		return e.Cause.Error()
	case e.Message != "":
		return e.Message
	}
	return http.StatusText(http.StatusInternalServerError)
}

func (e *UnclassifiedError) Unwrap() error { return e.Cause }

// New returns an UnclassifiedError with a declared status and message.
func New(status int, message string) *UnclassifiedError {
	return &UnclassifiedError{Status: status, Message: message}
}
