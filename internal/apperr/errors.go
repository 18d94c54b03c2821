// Package apperr carries the error kinds surfaced to API callers.
// Services return *Error values; handlers log them and turn them into
// a JSON error body, they are never rethrown past the handler.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/2beens/liftly/pkg"

	log "github.com/sirupsen/logrus"
)

type Kind int

const (
	KindUnknown Kind = iota
	ValidationFailed
	RemoteCallFailed
	NotFound
)

func (k Kind) String() string {
	switch k {
	case ValidationFailed:
		return "validation_failed"
	case RemoteCallFailed:
		return "remote_call_failed"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind  Kind
	Op    string
	Field string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Msg != "":
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, apperr.NotFound) style checks possible
// through a Kind target.
func (e *Error) Is(target error) bool {
	t, ok := target.(kindTarget)
	return ok && Kind(t) == e.Kind
}

type kindTarget Kind

func (k kindTarget) Error() string {
	return Kind(k).String()
}

// Target returns an error usable with errors.Is for the given kind.
func Target(k Kind) error {
	return kindTarget(k)
}

func Validation(op, field, msg string) *Error {
	return &Error{Kind: ValidationFailed, Op: op, Field: field, Msg: msg}
}

func Remote(op string, err error) *Error {
	return &Error{Kind: RemoteCallFailed, Op: op, Err: err}
}

func NotFoundErr(op, what string) *Error {
	return &Error{Kind: NotFound, Op: op, Msg: what + " not found"}
}

func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}

// UserMessage is the text shown to the user. Remote failures are
// deliberately generic.
func UserMessage(err error) (field, msg string) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return "", "internal error"
	}
	switch appErr.Kind {
	case ValidationFailed, NotFound:
		return appErr.Field, appErr.Msg
	default:
		return "", "something went wrong, please try again"
	}
}

func Status(err error) int {
	switch KindOf(err) {
	case ValidationFailed:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case RemoteCallFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as a JSON error body. Server side failures are logged.
func Respond(w http.ResponseWriter, err error) {
	status := Status(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("request failed: %s", err)
	} else {
		log.Debugf("request rejected: %s", err)
	}
	field, msg := UserMessage(err)
	pkg.WriteJSONError(w, field, msg, status)
}
