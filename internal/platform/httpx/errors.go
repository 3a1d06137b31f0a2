// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors shared by the domain layer.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrDuplicate  = errors.New("duplicate entry")
	ErrValidation = errors.New("validation failed")
	// ErrNotConfigured means no price list item exists for the requested
	// (product, store-or-global) combination.
	ErrNotConfigured = errors.New("no price configured")
	// ErrOutOfRange means the supplied dimensions fall outside every
	// configured range row. Distinct from ErrNotConfigured so callers can
	// tell "add a range" apart from "add a base price".
	ErrOutOfRange = errors.New("dimensions outside configured ranges")
	// ErrConflict signals an optimistic concurrency token mismatch.
	ErrConflict = errors.New("record changed, reload and retry")
	// ErrInUse signals deletion of an entity still referenced elsewhere.
	ErrInUse = errors.New("record is referenced and cannot be deleted")
)

// RespondError maps domain errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrNotConfigured):
		Problem(w, http.StatusNotFound, "No Price Configured", err.Error())
	case errors.Is(err, ErrOutOfRange):
		Problem(w, http.StatusUnprocessableEntity, "Dimensions Out Of Range", err.Error())
	case errors.Is(err, ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, ErrConflict):
		Problem(w, http.StatusConflict, "Concurrency Conflict", err.Error())
	case errors.Is(err, ErrInUse):
		Problem(w, http.StatusConflict, "Record In Use", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
