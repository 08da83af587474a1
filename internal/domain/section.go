package domain

import (
	"fmt"
	"strings"
	"time"
)

// Section (a.k.a. milestone) is a top-level, explicitly ordered container
// of tasks within a template. It is the only entity with a persisted
// ordering field; task order among siblings is implicit insertion order.
type Section struct {
	ID         string
	TemplateID string
	Title      string
	OrderIndex int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidateTitle checks that the section has a non-blank title.
func (s *Section) ValidateTitle() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("section title must not be empty: %w", ErrValidation)
	}
	return nil
}
