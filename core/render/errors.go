package render

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedContext = errors.New("render: unsupported render context")
	ErrMissingShell       = errors.New("render: page has no shell")
	ErrDuplicateBoundary  = errors.New("render: duplicate boundary id")
	ErrInvalidBoundaryID  = errors.New("render: invalid boundary id")
	ErrUnknownSlot        = errors.New("render: unknown slot")
	ErrAlreadyPiped       = errors.New("render: stream already piped")
)

// BoundaryError reports a failed boundary render.
type BoundaryError struct {
	ID  string
	Err error
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("render: boundary %q: %v", e.ID, e.Err)
}

func (e *BoundaryError) Unwrap() error { return e.Err }

// PanicError is returned when a component panics while rendering.
type PanicError struct {
	Value any
	stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("render: panic: %v", e.Value) }

// Stack returns the stack captured where the panic was recovered.
func (e *PanicError) Stack() []byte { return e.stack }

// Unwrap exposes a panicked error value.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
