package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mhalvorsen/treeline/internal/domain"
)

// GeneratedTemplate holds the domain objects produced from an import
// schema, ready for persistence.
type GeneratedTemplate struct {
	Template *domain.Template
	Sections []*domain.Section
	Tasks    []*domain.TaskNode
}

// Convert transforms a validated ImportSchema into domain objects ready for
// persistence. Call ValidateImportSchema first; Convert assumes the schema
// is valid. File-local refs are replaced with generated UUIDs; because a
// parent_ref must appear earlier in the tasks list, every parent resolves
// by the time it is referenced.
func Convert(schema *ImportSchema) (*GeneratedTemplate, error) {
	now := time.Now().UTC()

	template := &domain.Template{
		ID:        uuid.New().String(),
		Name:      schema.Template.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	sectionIDs := make(map[string]string) // ref -> UUID
	sections := make([]*domain.Section, 0, len(schema.Sections))
	for i, s := range schema.Sections {
		realID := uuid.New().String()
		sectionIDs[s.Ref] = realID
		sections = append(sections, &domain.Section{
			ID:         realID,
			TemplateID: template.ID,
			Title:      s.Title,
			OrderIndex: i,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	taskIDs := make(map[string]string) // ref -> UUID
	tasks := make([]*domain.TaskNode, 0, len(schema.Tasks))
	for _, t := range schema.Tasks {
		realID := uuid.New().String()
		taskIDs[t.Ref] = realID

		sectionID, ok := sectionIDs[t.SectionRef]
		if !ok {
			return nil, fmt.Errorf("section_ref %q not found for task %q", t.SectionRef, t.Ref)
		}

		var parentID *string
		if t.ParentRef != nil && *t.ParentRef != "" {
			pid, ok := taskIDs[*t.ParentRef]
			if !ok {
				return nil, fmt.Errorf("parent_ref %q not found for task %q", *t.ParentRef, t.Ref)
			}
			parentID = &pid
		}

		// Defaults cascade: task field > schema defaults > zero value.
		var assignedTo *string
		if t.AssignedTo != nil {
			assignedTo = t.AssignedTo
		} else if schema.Defaults != nil && schema.Defaults.AssignedTo != "" {
			a := schema.Defaults.AssignedTo
			assignedTo = &a
		}
		estimated := domain.IntFromPtrWithDefault(0, t.EstimatedDays, defaultEstimatedDays(schema.Defaults))

		tasks = append(tasks, &domain.TaskNode{
			ID:            realID,
			SectionID:     sectionID,
			ParentID:      parentID,
			Title:         t.Title,
			Description:   t.Description,
			DueDate:       parseOptionalDate(t.DueDate),
			AssignedTo:    assignedTo,
			EstimatedDays: estimated,
			OffsetDays:    domain.IntFromPtrWithDefault(0, t.OffsetDays),
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	return &GeneratedTemplate{
		Template: template,
		Sections: sections,
		Tasks:    tasks,
	}, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}

func defaultEstimatedDays(d *DefaultsImport) *int {
	if d != nil {
		return d.EstimatedDays
	}
	return nil
}
