// Package errs holds the typed failures returned by every layer of the client.
// Callers match them with errors.As or the Is* helpers below.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

type ParseCode string

const (
	UnrecognizedIdentifierFormat ParseCode = "unrecognized_identifier_format"
	KindMismatch                 ParseCode = "kind_mismatch"
	TemporalRange                ParseCode = "temporal_range"
	InvalidFormat                ParseCode = "invalid_format"
)

// ParseError reports a single value that could not be turned into its typed
// form. Entity and Field are filled in by the schema layer once it knows where
// the value came from.
type ParseError struct {
	Code     ParseCode
	Entity   string
	Field    string
	Raw      string
	Expected string
	Actual   string
	Reason   string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse ")
	b.WriteString(string(e.Code))
	if e.Entity != "" || e.Field != "" {
		fmt.Fprintf(&b, " at %s.%s", e.Entity, e.Field)
	}
	switch e.Code {
	case KindMismatch:
		fmt.Fprintf(&b, ": expected %s, got %s", e.Expected, e.Actual)
	case InvalidFormat:
		if e.Expected != "" {
			fmt.Fprintf(&b, ": not a valid %s", e.Expected)
		}
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if e.Raw != "" {
		fmt.Fprintf(&b, " (raw %q)", e.Raw)
	}
	return b.String()
}

// At returns a copy of the error located at entity.field, keeping any
// location that was already set.
func (e *ParseError) At(entity, field string) *ParseError {
	out := *e
	if out.Entity == "" {
		out.Entity = entity
	}
	if out.Field == "" {
		out.Field = field
	}
	return &out
}

type SchemaCode string

const (
	UnrecognizedDiscriminant SchemaCode = "unrecognized_discriminant"
	ConflictingField         SchemaCode = "conflicting_field"
	MissingField             SchemaCode = "missing_field"
	MalformedFragment        SchemaCode = "malformed_fragment"
)

// SchemaError is a structural problem with a payload. It is never recovered
// from by guessing.
type SchemaError struct {
	Code      SchemaCode
	Entity    string
	Field     string
	Raw       string
	Fragments []string
	Err       error
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("schema ")
	b.WriteString(string(e.Code))
	if e.Entity != "" || e.Field != "" {
		fmt.Fprintf(&b, " at %s.%s", e.Entity, e.Field)
	}
	if len(e.Fragments) > 0 {
		fmt.Fprintf(&b, " (fragments %s)", strings.Join(e.Fragments, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %s", e.Err)
	}
	if e.Raw != "" {
		fmt.Fprintf(&b, " (raw %s)", truncate(e.Raw, 120))
	}
	return b.String()
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// TransportError is whatever the fetcher could not get back from upstream.
type TransportError struct {
	Endpoint string
	Status   int
	Message  string
	Err      error
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("transport %s", e.Endpoint)
	if e.Status != 0 {
		msg += fmt.Sprintf(": status %d", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) RateLimited() bool {
	return e.Status == 429
}

// AuthenticationError means the session cookies were rejected.
type AuthenticationError struct {
	Endpoint string
	Status   int
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication rejected by %s (status %d)", e.Endpoint, e.Status)
}

func IsParseCode(err error, code ParseCode) bool {
	var perr *ParseError
	return errors.As(err, &perr) && perr.Code == code
}

func IsSchemaCode(err error, code SchemaCode) bool {
	var serr *SchemaError
	return errors.As(err, &serr) && serr.Code == code
}

func IsAuthentication(err error) bool {
	var aerr *AuthenticationError
	return errors.As(err, &aerr)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
