package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors produced by the repository layer. Handlers classify with
// errors.Is, so repositories may wrap these with extra context.
var (
	// ErrNotFound means no company exists under the requested id.
	ErrNotFound = errors.New("company not found")
	// ErrConflict means a storage uniqueness constraint rejected the write.
	ErrConflict = errors.New("company conflicts with an existing record")
	// ErrUnavailable means the storage engine could not be reached or timed
	// out. Safe for the client to retry; never retried here.
	ErrUnavailable = errors.New("storage unavailable")
)

// FieldErrorKind is the machine-readable class of a validation failure.
type FieldErrorKind string

const (
	KindOutOfRange               FieldErrorKind = "out_of_range"
	KindIncompleteCoordinatePair FieldErrorKind = "incomplete_coordinate_pair"
	KindEmptyRequiredField       FieldErrorKind = "empty_required_field"
	KindEmptyUpdate              FieldErrorKind = "empty_update"
	KindInvalidIdentifier        FieldErrorKind = "invalid_identifier"
)

// FieldError describes one invalid field in a request payload.
type FieldError struct {
	Field   string         `json:"field"`
	Message string         `json:"message"`
	Kind    FieldErrorKind `json:"kind"`
}

// ValidationError aggregates every invalid field found in a request. It is
// always client-caused and never worth retrying.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		f := e.Fields[0]
		return fmt.Sprintf("validation failed: %s: %s", f.Field, f.Message)
	}
	return fmt.Sprintf("validation failed: %d invalid fields", len(e.Fields))
}

func (e *ValidationError) add(field, message string, kind FieldErrorKind) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message, Kind: kind})
}

// ok reports whether no field errors were collected.
func (e *ValidationError) ok() bool { return len(e.Fields) == 0 }

// NewFieldError builds a single-field ValidationError.
func NewFieldError(field, message string, kind FieldErrorKind) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message, Kind: kind}}}
}
