package kernel

import (
	"errors"
	"strings"

	"foodbot/internal/pkg/errs"
	"foodbot/internal/pkg/guard"
)

const sessionPathMarker = "sessions/"

// ErrSessionIDIsNotConstructed is returned when validating a zero-value SessionID.
var ErrSessionIDIsNotConstructed = errs.NewValueIsRequiredError(
	"SessionID must be created via NewSessionID or SessionIDFromPath",
)

// SessionID identifies one ongoing conversation. Carts are keyed by it, and it
// is the only isolation boundary between users.
//
// The zero value is invalid. Build one with NewSessionID when the raw id is
// already known, or SessionIDFromPath when it has to be cut out of a transport
// session path:
//
//	id, err := kernel.SessionIDFromPath("projects/eatery/agent/sessions/5f1c-77")
//	// id.String() == "5f1c-77"
type SessionID struct {
	value string
	guard guard.ConstructorGuard
}

// NewSessionID wraps a raw session id. Surrounding whitespace is dropped and an
// empty result is rejected.
func NewSessionID(raw string) (SessionID, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return SessionID{}, errs.NewValueIsRequiredError("session id")
	}

	return SessionID{value: value, guard: guard.NewConstructorGuard()}, nil
}

// SessionIDFromPath extracts everything after the first "sessions/" segment of
// path. A path without that segment, or with nothing after it, is rejected.
func SessionIDFromPath(path string) (SessionID, error) {
	idx := strings.Index(path, sessionPathMarker)
	if idx < 0 {
		return SessionID{}, errs.NewValueIsRequiredErrorWithCause(
			"session id",
			errors.New("session path has no sessions/ segment"),
		)
	}

	return NewSessionID(path[idx+len(sessionPathMarker):])
}

// Validate reports whether the id was built through a constructor.
func (s SessionID) Validate() error {
	return s.guard.Validate(ErrSessionIDIsNotConstructed)
}

// String returns the raw session id.
func (s SessionID) String() string {
	return s.value
}

// IsEqual compares two session ids by value.
func (s SessionID) IsEqual(other SessionID) bool {
	return s.value == other.value
}
