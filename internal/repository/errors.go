package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// order version advanced between read and write
	ErrVersionConflict = errors.New("version conflict")
)
