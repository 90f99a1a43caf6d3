package duel

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for transport mapping
type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindForbidden       Kind = "forbidden"
	KindConflict        Kind = "conflict"
	KindTooManyRequests Kind = "too_many_requests"
	KindUpstream        Kind = "upstream"
	KindStorage         Kind = "storage"
	KindInvalidArgument Kind = "invalid_argument"
)

// Code is the stable machine-readable failure code returned to clients
type Code string

const (
	CodeDuelNotFound      Code = "DUEL_NOT_FOUND"
	CodeCharacterNotFound Code = "CHARACTER_NOT_FOUND"
	CodeForbidden         Code = "FORBIDDEN"
	CodeNotAParticipant   Code = "NOT_A_PARTICIPANT"
	CodeDuelNotActive     Code = "DUEL_NOT_ACTIVE"
	CodeTimeout           Code = "TIMEOUT"
	CodeCooldown          Code = "COOLDOWN"
	CodeSelfChallenge     Code = "SELF_CHALLENGE"
	CodeInvalidAction     Code = "INVALID_ACTION"
	CodeInvalidInput      Code = "INVALID_INPUT"
	CodeUpstream          Code = "UPSTREAM_ERROR"
	CodeStorage           Code = "STORAGE_ERROR"
)

// Error is a typed duel failure
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// wrap returns a copy of a sentinel carrying the underlying cause
func (e *Error) wrap(cause error) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: e.Message, Cause: cause}
}

// AsError extracts a *Error from err
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Define errors
var (
	ErrDuelNotFound      = &Error{Kind: KindNotFound, Code: CodeDuelNotFound, Message: "duel not found"}
	ErrCharacterNotFound = &Error{Kind: KindNotFound, Code: CodeCharacterNotFound, Message: "character not found"}
	ErrForbidden         = &Error{Kind: KindForbidden, Code: CodeForbidden, Message: "caller does not control this character"}
	ErrNotAParticipant   = &Error{Kind: KindForbidden, Code: CodeNotAParticipant, Message: "character is not part of this duel"}
	ErrDuelNotActive     = &Error{Kind: KindConflict, Code: CodeDuelNotActive, Message: "duel is not active"}
	ErrTimeout           = &Error{Kind: KindConflict, Code: CodeTimeout, Message: "duel timed out and ended in a draw"}
	ErrCooldown          = &Error{Kind: KindTooManyRequests, Code: CodeCooldown, Message: "action is on cooldown"}
	ErrSelfChallenge     = &Error{Kind: KindInvalidArgument, Code: CodeSelfChallenge, Message: "a character cannot challenge itself"}
	ErrInvalidAction     = &Error{Kind: KindInvalidArgument, Code: CodeInvalidAction, Message: "unknown action"}
	ErrInvalidInput      = &Error{Kind: KindInvalidArgument, Code: CodeInvalidInput, Message: "invalid input"}
	ErrUpstream          = &Error{Kind: KindUpstream, Code: CodeUpstream, Message: "character service unavailable"}
	ErrStorage           = &Error{Kind: KindStorage, Code: CodeStorage, Message: "duel storage failure"}
)

// ConfigError is returned by New for missing dependencies
type ConfigError string

// Error implements the error interface
func (e ConfigError) Error() string {
	return string(e)
}

const (
	ErrNilConfig          ConfigError = "config cannot be nil"
	ErrNilRepository      ConfigError = "duel repository cannot be nil"
	ErrNilCharacterClient ConfigError = "character client cannot be nil"
	ErrNilClock           ConfigError = "clock cannot be nil"
)
