package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrDatasetNotFound = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrModelNotFound   = fmt.Errorf("%w: model", ErrNotFound)
	ErrSessionNotFound = fmt.Errorf("%w: session", ErrNotFound)

	// Precondition errors, detected locally before any request is issued
	ErrNoDataset = errors.New("no dataset in session")
	ErrNoModel   = errors.New("no trained model in session")

	// Backend collaboration errors
	ErrBackendUnreachable = errors.New("backend unreachable")
	ErrBackendRejected    = errors.New("backend rejected request")

	// Data-shape errors
	ErrEmptyLeaderboard = errors.New("training outcome has no results")
	ErrUnknownProblem   = errors.New("unknown problem type")

	// ErrValidation tags user-input errors so the HTTP layer can map them
	// to a 400 rather than a 500
	ErrValidation = errors.New("validation failed")
)

// NewNotFoundError builds a not-found error with resource context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// NewValidationError builds an error for a field that failed validation
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w for %s: %s", ErrValidation, field, reason)
}

// IsValidationError checks whether err is a user-input validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFoundError checks whether err is any not-found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsPreconditionError reports whether err is a locally detected missing
// precondition, as opposed to a transport or backend failure. Stages map
// these to the Blocked display state without issuing a request.
func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrNoDataset) || errors.Is(err, ErrNoModel)
}

// IsBackendError reports whether err came out of a backend call.
func IsBackendError(err error) bool {
	return errors.Is(err, ErrBackendUnreachable) || errors.Is(err, ErrBackendRejected)
}
