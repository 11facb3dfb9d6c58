package kakao

import (
	"errors"
	"fmt"
)

// Sentinel errors for Kakao API operations.
var (
	ErrUnauthorized = errors.New("kakao: unauthorized")
	ErrRateLimited  = errors.New("kakao: rate limited by server")
	ErrBadRequest   = errors.New("kakao: bad request")
	ErrServer       = errors.New("kakao: server error")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op    string // Operation: "search"
	Query string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("kakao %s [%s]: %v", e.Op, e.Query, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op, query string, err error) error {
	return &Error{Op: op, Query: query, Err: err}
}
