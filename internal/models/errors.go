package models

import "errors"

var (
	// ErrNotFound is returned when a record does not exist or is not visible
	// to the viewer; callers cannot tell the two apart.
	ErrNotFound = errors.New("not found")

	// ErrBadRequest is returned when a required request parameter is missing.
	ErrBadRequest = errors.New("bad request")
)
