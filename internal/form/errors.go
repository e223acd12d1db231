package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownField = errors.New("form: unknown field")
	ErrInputLocked  = errors.New("form: inputs locked while submitting")
	ErrSubmitting   = errors.New("form: submission already in flight")
	ErrClosed       = errors.New("form: closed")
)

// ErrorKind classifies a field error.
type ErrorKind int

const (
	FieldRequired ErrorKind = iota + 1
	FieldFormatInvalid
	FieldTooShort
	FieldTooWeak
	FieldMismatch
	RemoteFailure
)

func (k ErrorKind) String() string {
	switch k {
	case FieldRequired:
		return "required"
	case FieldFormatInvalid:
		return "format_invalid"
	case FieldTooShort:
		return "too_short"
	case FieldTooWeak:
		return "too_weak"
	case FieldMismatch:
		return "mismatch"
	case RemoteFailure:
		return "remote_failure"
	default:
		return "unknown"
	}
}

// Issue is one displayable error.
type Issue struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// FieldErrors maps fields of one form kind (plus FieldGeneral) to issues.
// Present entries always carry a non-empty message.
type FieldErrors struct {
	kind   Kind
	issues map[Field]Issue
}

// NewFieldErrors returns an empty mapping for the given form kind.
func NewFieldErrors(kind Kind) *FieldErrors {
	return &FieldErrors{kind: kind, issues: make(map[Field]Issue)}
}

func (e *FieldErrors) allows(f Field) bool {
	return f == FieldGeneral || e.kind.has(f)
}

// Set records an issue. An empty message clears the field instead.
func (e *FieldErrors) Set(f Field, kind ErrorKind, msg string) error {
	if !e.allows(f) {
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	if strings.TrimSpace(msg) == "" {
		delete(e.issues, f)
		return nil
	}
	e.issues[f] = Issue{Kind: kind, Message: msg}
	return nil
}

// ClearField removes the entry for f, if any.
func (e *FieldErrors) ClearField(f Field) {
	delete(e.issues, f)
}

// Clear removes every entry.
func (e *FieldErrors) Clear() {
	e.issues = make(map[Field]Issue)
}

// RebuildAll replaces the whole mapping with next. Entries for unknown
// fields or with empty messages are dropped.
func (e *FieldErrors) RebuildAll(next map[Field]Issue) {
	e.Clear()
	for f, is := range next {
		_ = e.Set(f, is.Kind, is.Message)
	}
}

// Get returns the issue recorded for f.
func (e *FieldErrors) Get(f Field) (Issue, bool) {
	is, ok := e.issues[f]
	return is, ok
}

// Message returns the message for f or "".
func (e *FieldErrors) Message(f Field) string {
	return e.issues[f].Message
}

func (e *FieldErrors) Len() int { return len(e.issues) }

// Snapshot returns a copy safe to hand out.
func (e *FieldErrors) Snapshot() map[Field]Issue {
	out := make(map[Field]Issue, len(e.issues))
	for f, is := range e.issues {
		out[f] = is
	}
	return out
}

// ValidationError is returned when a submit is rejected.
type ValidationError struct {
	Issues map[Field]Issue
}

func (v *ValidationError) Error() string {
	fields := make([]string, 0, len(v.Issues))
	for f := range v.Issues {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)
	return "form: validation failed: " + strings.Join(fields, ", ")
}

// Failure is an authentication failure with a reason fit for display.
type Failure struct {
	Reason string
}

func (f *Failure) Error() string { return "authentication failed: " + f.Reason }

// NewFailure returns a *Failure with the given reason.
func NewFailure(reason string) error { return &Failure{Reason: reason} }
