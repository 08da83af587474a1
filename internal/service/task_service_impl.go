package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mhalvorsen/treeline/internal/domain"
	"github.com/mhalvorsen/treeline/internal/repository"
)

type taskService struct {
	tasks    repository.TaskRepo
	sections repository.SectionRepo
	observer UseCaseObserver
}

func NewTaskService(tasks repository.TaskRepo, sections repository.SectionRepo, observers ...UseCaseObserver) TaskService {
	return &taskService{
		tasks:    tasks,
		sections: sections,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) Create(ctx context.Context, t *domain.TaskNode) error {
	started := time.Now()
	err := s.create(ctx, t)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "task_create",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    map[string]any{"section_id": t.SectionID},
		StartedAt: started,
	})
	return err
}

func (s *taskService) create(ctx context.Context, t *domain.TaskNode) error {
	if err := t.ValidateTitle(); err != nil {
		return err
	}
	if _, err := s.sections.GetByID(ctx, t.SectionID); err != nil {
		return fmt.Errorf("resolving section %s: %w", t.SectionID, err)
	}
	if err := s.validateParent(ctx, t); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.TaskNode, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListBySection(ctx context.Context, sectionID string) ([]*domain.TaskNode, error) {
	return s.tasks.ListBySection(ctx, sectionID)
}

func (s *taskService) ListByTemplate(ctx context.Context, templateID string) ([]*domain.TaskNode, error) {
	return s.tasks.ListByTemplate(ctx, templateID)
}

func (s *taskService) Update(ctx context.Context, t *domain.TaskNode) error {
	if err := t.ValidateTitle(); err != nil {
		return err
	}
	if err := s.validateParent(ctx, t); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	started := time.Now()
	err := s.tasks.Delete(ctx, id)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "task_delete",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    map[string]any{"task_id": id},
		StartedAt: started,
	})
	return err
}

// validateParent enforces the structural rules on a task's parent link:
// the parent must exist, sit in the same section, and not be the task
// itself or one of its descendants. Descendants are found by walking
// parent pointers of the section's tasks, so a dangling pointer among
// unrelated tasks does not fail the check.
func (s *taskService) validateParent(ctx context.Context, t *domain.TaskNode) error {
	if t.ParentID == nil {
		return nil
	}
	pid := *t.ParentID
	if pid == t.ID {
		return fmt.Errorf("task cannot be its own parent: %w", domain.ErrValidation)
	}
	parent, err := s.tasks.GetByID(ctx, pid)
	if err != nil {
		return fmt.Errorf("resolving parent %s: %w", pid, err)
	}
	if parent.SectionID != t.SectionID {
		return fmt.Errorf("parent %s belongs to another section: %w", pid, domain.ErrValidation)
	}
	if t.ID == "" {
		return nil
	}

	siblings, err := s.tasks.ListBySection(ctx, t.SectionID)
	if err != nil {
		return err
	}
	index := make(map[string]*domain.TaskNode, len(siblings))
	for _, sib := range siblings {
		index[sib.ID] = sib
	}
	seen := make(map[string]bool)
	for cur := parent; cur != nil; {
		if cur.ID == t.ID {
			return fmt.Errorf("task cannot be moved under its own descendant: %w", domain.ErrValidation)
		}
		if seen[cur.ID] {
			break
		}
		seen[cur.ID] = true
		if cur.ParentID == nil {
			break
		}
		cur = index[*cur.ParentID]
	}
	return nil
}
