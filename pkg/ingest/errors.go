package ingest

import "errors"

var (
	// ErrMissingReference is returned if a lap refers to a car or driver
	// which is not part of the same file.
	ErrMissingReference = errors.New("missing reference")
	ErrPersistence      = errors.New("persistence error")
)
