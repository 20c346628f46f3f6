package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrUnsupportedInput = errors.New("unsupported input")
	ErrExtraction       = errors.New("extraction failed")
	ErrFileTooLarge     = errors.New("file exceeds size limit")
	ErrUsage            = errors.New("usage error")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// UsageError represents a malformed invocation
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error { return e.Err }

func (e *UsageError) Is(target error) bool {
	return target == ErrUsage
}

// UnsupportedInputError is returned when a path is neither a directory,
// a profile file, nor a recognized archive
type UnsupportedInputError struct {
	Path   string
	Reason string
}

func (e *UnsupportedInputError) Error() string {
	return fmt.Sprintf("unsupported input type: %s (%s)", e.Path, e.Reason)
}

func (e *UnsupportedInputError) Is(target error) bool {
	return target == ErrUnsupportedInput
}

// ExtractionError represents an archive that could not be expanded
type ExtractionError struct {
	Archive string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("cannot extract %s: %v", e.Archive, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtraction
}
