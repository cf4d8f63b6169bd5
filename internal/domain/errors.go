package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// MalformedSegmentDataError marks a trip whose trip_data blob does not
// decode to a segment array. Search paths skip the trip instead of
// propagating this to the caller.
type MalformedSegmentDataError struct {
	TripID int64
	Err    error
}

func (e MalformedSegmentDataError) Error() string {
	return fmt.Sprintf("trip %d: malformed segment data", e.TripID)
}

func (e MalformedSegmentDataError) Unwrap() error { return e.Err }

// SegmentNotFoundError marks a business trip id whose segment index does
// not exist on the referenced trip. Stale ids from client caches land
// here, so callers treat it as "no such segment" rather than a failure.
type SegmentNotFoundError struct {
	BusinessID string
}

func (e SegmentNotFoundError) Error() string {
	if e.BusinessID == "" {
		return "segment not found"
	}
	return fmt.Sprintf("segment %s not found", e.BusinessID)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsMalformedSegmentData(err error) bool {
	var target MalformedSegmentDataError
	return errors.As(err, &target)
}

func IsSegmentNotFound(err error) bool {
	var target SegmentNotFoundError
	return errors.As(err, &target)
}
