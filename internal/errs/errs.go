// Package errs contains sentinel errors shared across layers so handlers can
// map store and service failures to stable HTTP responses.
package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound indicates the requested row does not exist or is not owned
	// by the requesting user.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation (e.g. email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthenticated indicates a missing, malformed or unknown token.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidReference indicates a relation references a row that does
	// not exist (foreign key violation).
	ErrInvalidReference = errors.New("invalid reference")
)

// FieldErrors carries per-field validation messages, keyed by the JSON field
// name. It is returned by request validation and serialized as the "errors"
// object of a 400 response.
type FieldErrors map[string][]string

// Add appends a message for the given field.
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Error implements error.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e[f], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Required returns a FieldErrors marking a single field as missing, using the
// same wording for every required-field failure.
func Required(field string) FieldErrors {
	return FieldErrors{field: {"This field is required."}}
}
