package domain

import (
	"fmt"
	"strings"
	"time"
)

// Template is a reusable project blueprint. It owns an ordered list of
// Sections, which in turn own the task outline.
type Template struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateName checks that the template has a non-blank name.
func (t *Template) ValidateName() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("template name must not be empty: %w", ErrValidation)
	}
	return nil
}

// DisplayID returns a short identifier for display, truncating the UUID.
func (t *Template) DisplayID() string {
	if len(t.ID) >= 8 {
		return t.ID[:8]
	}
	return t.ID
}
