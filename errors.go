package gradir

import (
	"errors"
	"fmt"
)

var (
	// ErrWitnessNotAvailable is returned when no derivative witness can be
	// resolved or synthesized for a request: the result shape is
	// unsupported, the function has no source declaration, or no
	// annotation covers the requested parameters.
	ErrWitnessNotAvailable = errors.New("witness not available")
)

// ErrUnknownFunction indicates a resolution request for a function name
// the module does not hold.
type ErrUnknownFunction struct {
	Name string
}

func (e *ErrUnknownFunction) Error() string {
	return fmt.Sprintf("unknown function: %q", e.Name)
}

// ErrDuplicateFunction indicates two functions registered under one name.
type ErrDuplicateFunction struct {
	Name string
}

func (e *ErrDuplicateFunction) Error() string {
	return fmt.Sprintf("duplicate function: %q", e.Name)
}
