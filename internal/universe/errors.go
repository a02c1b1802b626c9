package universe

import (
	"errors"
	"fmt"
)

var (
	ErrDensityTooHighForBoundary        = errors.New("density too high for boundary")
	ErrHomeworldSeparationUnsatisfiable = errors.New("homeworld separation unsatisfiable")
	ErrInvalidParameters                = errors.New("invalid parameters")
)

// Stage names a step of the generation pipeline.
type Stage string

const (
	StageInit               Stage = "init"
	StageBoundaryComputed   Stage = "boundary_computed"
	StagePlaced             Stage = "placed"
	StageClumped            Stage = "clumped"
	StageHomeworldsAssigned Stage = "homeworlds_assigned"
	StageFinalized          Stage = "finalized"
)

// GenerationError is the single failure type of Generate. Kind is one of the
// package's sentinel errors; Stage is the step that was running.
type GenerationError struct {
	Kind   error
	Stage  Stage
	Detail string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("universe generation failed during %s: %v: %s", e.Stage, e.Kind, e.Detail)
}

func (e *GenerationError) Unwrap() error {
	return e.Kind
}

func failf(kind error, stage Stage, format string, args ...any) error {
	return &GenerationError{
		Kind:   kind,
		Stage:  stage,
		Detail: fmt.Sprintf(format, args...),
	}
}
