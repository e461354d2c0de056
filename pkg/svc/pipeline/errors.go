package pipeline

import "errors"

var (
	// ErrProjectExists is returned when the project root is already present.
	ErrProjectExists = errors.New("project directory already exists")
	// ErrStepFailed wraps the error of a failed step.
	ErrStepFailed = errors.New("step failed")
	// ErrRecordNotFound is returned when no project record exists below a root.
	ErrRecordNotFound = errors.New("project record not found")
	// ErrInvalidRecord is returned when a project record cannot be decoded.
	ErrInvalidRecord = errors.New("invalid project record")
)
