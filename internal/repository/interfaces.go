package repository

import (
	"context"

	"github.com/mhalvorsen/treeline/internal/domain"
)

type TemplateRepo interface {
	Create(ctx context.Context, t *domain.Template) error
	GetByID(ctx context.Context, id string) (*domain.Template, error)
	List(ctx context.Context) ([]*domain.Template, error)
	Update(ctx context.Context, t *domain.Template) error
	Delete(ctx context.Context, id string) error
}

type SectionRepo interface {
	Create(ctx context.Context, s *domain.Section) error
	GetByID(ctx context.Context, id string) (*domain.Section, error)
	ListByTemplate(ctx context.Context, templateID string) ([]*domain.Section, error)
	NextOrderIndex(ctx context.Context, templateID string) (int, error)
	Update(ctx context.Context, s *domain.Section) error
	UpdateOrderIndex(ctx context.Context, id string, orderIndex int) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.TaskNode) error
	GetByID(ctx context.Context, id string) (*domain.TaskNode, error)
	ListBySection(ctx context.Context, sectionID string) ([]*domain.TaskNode, error)
	ListByTemplate(ctx context.Context, templateID string) ([]*domain.TaskNode, error)
	Update(ctx context.Context, t *domain.TaskNode) error
	Delete(ctx context.Context, id string) error
}
