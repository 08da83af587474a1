package outline

import (
	"context"

	"github.com/mhalvorsen/treeline/internal/domain"
)

// TaskStore is the engine's view of the task backend. The service layer
// satisfies it; tests substitute fakes.
type TaskStore interface {
	ListByTemplate(ctx context.Context, templateID string) ([]*domain.TaskNode, error)
	Create(ctx context.Context, t *domain.TaskNode) error
	Update(ctx context.Context, t *domain.TaskNode) error
	Delete(ctx context.Context, id string) error
}

// SectionStore is the engine's view of the section backend.
type SectionStore interface {
	ListByTemplate(ctx context.Context, templateID string) ([]*domain.Section, error)
	Reorder(ctx context.Context, templateID string, orderedIDs []string) error
}
