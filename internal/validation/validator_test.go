package validation

import (
	"testing"

	domainerrors "github.com/bookhive/bookhive-server/internal/errors"
)

type createAuthorProbe struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

func TestValidateOK(t *testing.T) {
	v := New()
	err := v.Validate(createAuthorProbe{Name: "Han Kang"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateReturnsDomainError(t *testing.T) {
	v := New()
	err := v.Validate(createAuthorProbe{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !domainerrors.Is(err, domainerrors.ErrValidation) {
		t.Errorf("expected validation domain error, got %v", err)
	}

	var derr *domainerrors.Error
	if !domainerrors.As(err, &derr) {
		t.Fatal("expected *errors.Error")
	}
	details, ok := derr.Details.(map[string]string)
	if !ok {
		t.Fatalf("expected field map details, got %T", derr.Details)
	}
	if details["name"] != "is required" {
		t.Errorf("expected json tag field name, got %v", details)
	}
}
