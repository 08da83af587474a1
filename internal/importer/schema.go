package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for template import.
type ImportSchema struct {
	Template TemplateImport  `json:"template"`
	Defaults *DefaultsImport `json:"defaults,omitempty"`
	Sections []SectionImport `json:"sections"`
	Tasks    []TaskImport    `json:"tasks"`
}

// TemplateImport defines the template-level fields in the import file.
type TemplateImport struct {
	Name string `json:"name"`
}

// DefaultsImport defines template-wide defaults that cascade to tasks.
type DefaultsImport struct {
	AssignedTo    string `json:"assigned_to,omitempty"`
	EstimatedDays *int   `json:"estimated_days,omitempty"`
}

// SectionImport defines a section in the import file. Sections are
// ordered by their position in the list.
type SectionImport struct {
	Ref   string `json:"ref"`
	Title string `json:"title"`
}

// TaskImport defines a task in the import file. ParentRef, when set,
// must name a task that appears earlier in the list and belongs to the
// same section.
type TaskImport struct {
	Ref           string  `json:"ref"`
	SectionRef    string  `json:"section_ref"`
	ParentRef     *string `json:"parent_ref,omitempty"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	DueDate       *string `json:"due_date,omitempty"`
	AssignedTo    *string `json:"assigned_to,omitempty"`
	EstimatedDays *int    `json:"estimated_days,omitempty"`
	OffsetDays    *int    `json:"offset_days,omitempty"`
}

// LoadImportSchema reads and parses a template import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
