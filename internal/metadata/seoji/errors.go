package seoji

import (
	"errors"
	"fmt"
)

// Sentinel errors for feed API operations.
var (
	ErrRateLimited     = errors.New("seoji: rate limited by server")
	ErrBadRequest      = errors.New("seoji: bad request")
	ErrServer          = errors.New("seoji: server error")
	ErrInvalidResponse = errors.New("seoji: invalid response")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op   string // Operation: "listByDate"
	Page int
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("seoji %s [page %d]: %v", e.Op, e.Page, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op string, page int, err error) error {
	return &Error{Op: op, Page: page, Err: err}
}
