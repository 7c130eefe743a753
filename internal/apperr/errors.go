package apperr

import "fmt"

// Kind classifies an application error so the HTTP boundary can pick a status
// code without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindPermission
	KindConflict
	KindUnauthenticated
	KindMethodNotAllowed
)

// Error carries a kind, a user-facing message and optional field-level detail.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string { return e.Message }

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// FieldErrors builds a validation error from per-field messages.
func FieldErrors(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "invalid payload", Fields: fields}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func Permission(msg string) *Error {
	return &Error{Kind: KindPermission, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func MethodNotAllowed(msg string) *Error {
	return &Error{Kind: KindMethodNotAllowed, Message: msg}
}

// KindOf returns the kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindUnknown
}

// DetailsOf returns the field map of err when present.
func DetailsOf(err error) map[string]string {
	if e, ok := err.(*Error); ok {
		return e.Fields
	}
	return nil
}
