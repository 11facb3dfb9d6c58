package store

import "errors"

// Sentinel errors returned by store operations. Callers translate these
// into domain errors at the service layer.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)
