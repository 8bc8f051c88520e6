package models

import (
	"strings"
	"time"
)

type Task struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate reports every violated invariant of the task. A task that fails
// validation must never reach the database.
func (t *Task) Validate() error {
	var messages []string
	if strings.TrimSpace(t.Description) == "" {
		messages = append(messages, "Description can't be blank")
	}
	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}
