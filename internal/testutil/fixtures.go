package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/mhalvorsen/treeline/internal/domain"
)

// Template options
type TemplateOption func(*domain.Template)

func NewTestTemplate(name string, opts ...TemplateOption) *domain.Template {
	now := time.Now().UTC()
	tpl := &domain.Template{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(tpl)
	}
	return tpl
}

// Section options
type SectionOption func(*domain.Section)

func WithOrderIndex(i int) SectionOption {
	return func(s *domain.Section) {
		s.OrderIndex = i
	}
}

func NewTestSection(templateID, title string, opts ...SectionOption) *domain.Section {
	now := time.Now().UTC()
	s := &domain.Section{
		ID:         uuid.New().String(),
		TemplateID: templateID,
		Title:      title,
		OrderIndex: 0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TaskNode options
type TaskOption func(*domain.TaskNode)

func WithParentID(id string) TaskOption {
	return func(t *domain.TaskNode) {
		t.ParentID = &id
	}
}

func WithDescription(d string) TaskOption {
	return func(t *domain.TaskNode) {
		t.Description = d
	}
}

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.TaskNode) {
		t.DueDate = &d
	}
}

func WithAssignee(a string) TaskOption {
	return func(t *domain.TaskNode) {
		t.AssignedTo = &a
	}
}

func WithEstimatedDays(d int) TaskOption {
	return func(t *domain.TaskNode) {
		t.EstimatedDays = d
	}
}

func NewTestTask(sectionID, title string, opts ...TaskOption) *domain.TaskNode {
	now := time.Now().UTC()
	t := &domain.TaskNode{
		ID:        uuid.New().String(),
		SectionID: sectionID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
