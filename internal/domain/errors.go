package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCoordinate    = errors.New("missing coordinate")
	ErrInvalidCoordinate    = errors.New("invalid coordinate")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrDuplicateStop        = errors.New("duplicate stop")
	ErrUnknownStop          = errors.New("unknown stop")
)

// MissingCoordinateError is returned when a stop reaches the planner without a resolved location.
type MissingCoordinateError struct {
	StopID string
}

func (e *MissingCoordinateError) Error() string {
	return fmt.Sprintf("stop %q has no resolved coordinate", e.StopID)
}

func (e *MissingCoordinateError) Unwrap() error { return ErrMissingCoordinate }

type InvalidCoordinateError struct {
	StopID string
	Point  GeoPoint
	Reason string
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("stop %q coordinate %s is invalid: %s", e.StopID, e.Point, e.Reason)
}

func (e *InvalidCoordinateError) Unwrap() error { return ErrInvalidCoordinate }

// InvalidConfigurationError reports a planner option outside its allowed range.
type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

func (e *InvalidConfigurationError) Unwrap() error { return ErrInvalidConfiguration }

type DuplicateStopError struct {
	StopID string
}

func (e *DuplicateStopError) Error() string {
	return fmt.Sprintf("stop %q appears more than once", e.StopID)
}

func (e *DuplicateStopError) Unwrap() error { return ErrDuplicateStop }

// UnknownStopError is returned by repositories when a requested stop id does not exist.
type UnknownStopError struct {
	StopIDs []string
}

func (e *UnknownStopError) Error() string {
	return fmt.Sprintf("unknown stop ids: %v", e.StopIDs)
}

func (e *UnknownStopError) Unwrap() error { return ErrUnknownStop }
