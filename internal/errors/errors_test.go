package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := NotFound("book 9791162243077 not found")
	if !Is(err, ErrNotFound) {
		t.Error("NotFound error should match ErrNotFound")
	}
	if Is(err, ErrConflict) {
		t.Error("NotFound error should not match ErrConflict")
	}
}

func TestErrorWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("sql: no rows")
	err := Wrap(cause, CodeInternal, "load job history")

	if Unwrap(err) != cause {
		t.Error("Unwrap should return the cause")
	}
	if got := err.Error(); got != "load job history: sql: no rows" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrAlreadyExists, http.StatusConflict},
		{ErrValidation, http.StatusBadRequest},
		{ErrUpstream, http.StatusBadGateway},
		{ErrInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.err.Code, got, tc.want)
		}
	}
}

func TestWithDetails(t *testing.T) {
	err := ValidationWithDetails("validation failed", map[string]string{"isbn": "is required"})
	if err.Details == nil {
		t.Fatal("details missing")
	}
	if !Is(err, ErrValidation) {
		t.Error("should still match ErrValidation")
	}
}
