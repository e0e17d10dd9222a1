package apperr

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failure categories surfaced to API clients.
type Kind uint8

const (
	KindStore Kind = iota + 1
	KindUnauthenticated
	KindTokenUnresolved
	KindAlreadyRelated
	KindConflict
	KindNotFound
	KindForbidden
	KindInvalidInput
)

// Code returns the machine-readable code clients branch on.
func (k Kind) Code() string {
	switch k {
	case KindUnauthenticated:
		return "UNAUTHENTICATED"
	case KindTokenUnresolved:
		return "TOKEN_UNRESOLVED"
	case KindAlreadyRelated, KindConflict:
		return "DUPLICATED"
	case KindNotFound:
		return "NOT_FOUND"
	case KindForbidden:
		return "FORBIDDEN"
	case KindInvalidInput:
		return "BAD_USER_INPUT"
	default:
		return "UNRESOLVED"
	}
}

func (k Kind) String() string { return k.Code() }

// Error is the structured error every service operation returns.
// Err holds the underlying cause for diagnostics and is never shown to clients.
type Error struct {
	Kind    Kind
	Message string
	Token   string
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Extensions is picked up by the GraphQL executor and rendered under "extensions".
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.Kind.Code()}
	if e.Token != "" {
		ext["tokenBearer"] = e.Token
	}
	if len(e.Details) > 0 {
		ext["details"] = e.Details
	}
	return ext
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func TokenUnresolved(token string, err error) *Error {
	return &Error{Kind: KindTokenUnresolved, Message: "could not resolve token", Token: token, Err: err}
}

func AlreadyRelated(msg string) *Error {
	return &Error{Kind: KindAlreadyRelated, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func InvalidInput(msg string, details map[string]string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg, Details: details}
}

func Store(msg string, err error) *Error {
	return &Error{Kind: KindStore, Message: msg, Err: err}
}

// KindOf reports the Kind of err, or KindStore for anything unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// Is reports whether err carries the given kind.
func Is(err error, k Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == k
}

// From returns err as *Error, wrapping unclassified errors as store failures.
func From(err error, msg string) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Store(msg, err)
}
