package ledger

import (
	"errors"
	"fmt"
)

// Kind classifies a ledger failure. Every kind is user-facing and recoverable.
type Kind string

const (
	KindInvalidReference Kind = "InvalidReference"
	KindMissingField     Kind = "MissingField"
	KindInvalidInterval  Kind = "InvalidInterval"
	KindSlotConflict     Kind = "SlotConflict"
	KindNotFound         Kind = "NotFound"
	KindForbidden        Kind = "Forbidden"
)

// Error is returned by every ledger operation that rejects a request.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrSlotConflict) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidReference = &Error{Kind: KindInvalidReference}
	ErrMissingField     = &Error{Kind: KindMissingField}
	ErrInvalidInterval  = &Error{Kind: KindInvalidInterval}
	ErrSlotConflict     = &Error{Kind: KindSlotConflict}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrForbidden        = &Error{Kind: KindForbidden}
)

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind of a ledger error.
func KindOf(err error) (Kind, bool) {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind, true
	}
	return "", false
}
