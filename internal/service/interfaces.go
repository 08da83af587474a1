package service

import (
	"context"

	"github.com/mhalvorsen/treeline/internal/domain"
	"github.com/mhalvorsen/treeline/internal/importer"
)

type TemplateService interface {
	Create(ctx context.Context, t *domain.Template) error
	GetByID(ctx context.Context, id string) (*domain.Template, error)
	List(ctx context.Context) ([]*domain.Template, error)
	Rename(ctx context.Context, id, name string) (*domain.Template, error)
	Delete(ctx context.Context, id string) error
}

type SectionService interface {
	Create(ctx context.Context, s *domain.Section) error
	GetByID(ctx context.Context, id string) (*domain.Section, error)
	ListByTemplate(ctx context.Context, templateID string) ([]*domain.Section, error)
	Update(ctx context.Context, s *domain.Section) error
	Reorder(ctx context.Context, templateID string, orderedIDs []string) error
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.TaskNode) error
	GetByID(ctx context.Context, id string) (*domain.TaskNode, error)
	ListBySection(ctx context.Context, sectionID string) ([]*domain.TaskNode, error)
	ListByTemplate(ctx context.Context, templateID string) ([]*domain.TaskNode, error)
	Update(ctx context.Context, t *domain.TaskNode) error
	Delete(ctx context.Context, id string) error
}

// ImportResult holds the outcome of a template import.
type ImportResult struct {
	Template     *domain.Template
	SectionCount int
	TaskCount    int
}

type ImportService interface {
	ImportTemplate(ctx context.Context, filePath string) (*ImportResult, error)
	ImportTemplateFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
