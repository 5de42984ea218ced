package ledger

import (
	"errors"
	"fmt"

	"github.com/chris/donation-ledger/pkg/storage"
)

var (
	// ErrNotFound is returned when a referenced donation, lead or allocation is absent.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState is returned when an operation is attempted from a disallowed state.
	ErrInvalidState = errors.New("invalid state")

	// ErrOverAllocation is returned when allocation targets exceed the donation's remaining balance.
	ErrOverAllocation = errors.New("allocation exceeds remaining balance")

	// ErrInvalidArgument is returned for non-positive amounts and malformed target lists.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPersistence is returned when the datastore fails.
	ErrPersistence = errors.New("persistence failure")
)

// IsValidationError reports whether err was detected before any mutation.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrOverAllocation) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrNotFound)
}

// Result is the discriminated outcome returned to callers of mutating operations.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ResultOf builds a Result from an operation error.
func ResultOf(err error) Result {
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	return Result{Success: true}
}

// storageError maps a storage failure onto the ledger error kinds.
func storageError(err error, what string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	case errors.Is(err, storage.ErrLeadClosed):
		return fmt.Errorf("%w: %s is closed", ErrInvalidState, what)
	default:
		return fmt.Errorf("%w: %s: %v", ErrPersistence, what, err)
	}
}
