package application

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts field names to readable words for error messages
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"inputPath":  "input path",
		"identifier": "identifier",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateWorkers checks that a worker count is usable
func ValidateWorkers(n int) error {
	if n < 1 {
		return &ValidationError{
			Field:   "workers",
			Message: fmt.Sprintf("must be at least 1, got: %d", n),
		}
	}
	return nil
}
