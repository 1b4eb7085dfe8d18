package mimestruct

import (
	"errors"
	"fmt"
)

// ErrNoMatchingStructure is wrapped by every ClassificationError.
var ErrNoMatchingStructure = errors.New("no matching structure for the given feature combination")

// ClassificationError reports that no strategy accepted a Features value.
// It indicates a defect in the strategy set, never bad user input.
type ClassificationError struct {
	Features Features
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("%v (%s)", ErrNoMatchingStructure, e.Features)
}

func (e *ClassificationError) Unwrap() error { return ErrNoMatchingStructure }
