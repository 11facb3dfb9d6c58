// Package service orchestrates catalog operations between the API
// layer and the store.
package service

import (
	goerrors "errors"

	"github.com/bookhive/bookhive-server/internal/errors"
	"github.com/bookhive/bookhive-server/internal/store"
)

// mapStoreErr translates store sentinel errors into domain errors.
func mapStoreErr(err error, notFoundMsg, existsMsg string) error {
	switch {
	case goerrors.Is(err, store.ErrNotFound):
		return errors.NotFound(notFoundMsg)
	case goerrors.Is(err, store.ErrAlreadyExists):
		return errors.AlreadyExists(existsMsg)
	default:
		return err
	}
}
