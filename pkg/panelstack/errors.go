package panelstack

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/panelstack/pkg/panelstack/router"
)

// ErrClosed is returned when waiting on a route store that has shut down.
var ErrClosed = router.ErrClosed

// InfrastructureError represents a framework-level error that indicates
// something is wrong with the platform itself (SDL failed to start, the
// window could not be created, an input device vanished). These errors are
// typically fatal for the hosting screen.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "open_window", "back_button")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("panelstack: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("panelstack: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError creates a new infrastructure error.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}

// IsClosed checks if an error reports a closed route store.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}
