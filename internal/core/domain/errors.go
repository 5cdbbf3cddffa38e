package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business rule failures.
// These are distinct from infrastructure errors, which are wrapped with
// fmt.Errorf and never match any of the sentinels below.
var (
	// ErrNotFound indicates the entity is absent or not visible to the actor.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the entity exists but the actor lacks ownership or role.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation indicates malformed input: bad MIME type, oversize file, past date.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidState indicates the operation is not legal for the entity's lifecycle state.
	ErrInvalidState = errors.New("invalid state")

	// ErrConflict indicates a uniqueness violation or an entity already in the target state.
	ErrConflict = errors.New("conflict")

	// ErrNotImplemented indicates a required port was not wired.
	ErrNotImplemented = errors.New("not implemented")
)

// Kind classifies an error for transports.
type Kind string

// Error kinds. KindInternal covers everything that is not a domain failure.
const (
	KindNotFound     Kind = "not_found"
	KindForbidden    Kind = "forbidden"
	KindValidation   Kind = "validation"
	KindInvalidState Kind = "invalid_state"
	KindConflict     Kind = "conflict"
	KindInternal     Kind = "internal"
)

// Errorf wraps a domain sentinel with a formatted message.
// The result matches the sentinel under errors.Is.
func Errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

// KindOf returns the domain kind of err, or KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindInternal
	}
}
