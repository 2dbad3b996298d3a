package config

import "errors"

// Validation errors returned by Config.Validate. Callers match them with
// errors.Is.
var (
	// ErrUnknownTemplate is returned for a template other than structured or classic.
	ErrUnknownTemplate = errors.New("unknown template: use structured or classic")

	// ErrUnknownLabels is returned for a label set other than hu or en.
	ErrUnknownLabels = errors.New("unknown labels: use hu or en")

	// ErrInvalidCompression is returned when compression is outside -1..9.
	ErrInvalidCompression = errors.New("invalid compression: must be between -1 and 9")

	// ErrNoOutputDir is returned when the output directory resolves to nothing.
	ErrNoOutputDir = errors.New("output directory is empty")
)
