package models

import "strings"

// ValidationError carries full, human readable messages, one per violation.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, ", ")
}
