package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mhalvorsen/treeline/internal/db"
	"github.com/mhalvorsen/treeline/internal/domain"
	"github.com/mhalvorsen/treeline/internal/repository"
)

type sectionService struct {
	sections repository.SectionRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewSectionService(sections repository.SectionRepo, uow db.UnitOfWork, observers ...UseCaseObserver) SectionService {
	return &sectionService{
		sections: sections,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *sectionService) Create(ctx context.Context, sec *domain.Section) error {
	if err := sec.ValidateTitle(); err != nil {
		return err
	}
	if sec.ID == "" {
		sec.ID = uuid.New().String()
	}
	next, err := s.sections.NextOrderIndex(ctx, sec.TemplateID)
	if err != nil {
		return err
	}
	sec.OrderIndex = next
	now := time.Now().UTC()
	sec.CreatedAt = now
	sec.UpdatedAt = now
	return s.sections.Create(ctx, sec)
}

func (s *sectionService) GetByID(ctx context.Context, id string) (*domain.Section, error) {
	return s.sections.GetByID(ctx, id)
}

func (s *sectionService) ListByTemplate(ctx context.Context, templateID string) ([]*domain.Section, error) {
	return s.sections.ListByTemplate(ctx, templateID)
}

func (s *sectionService) Update(ctx context.Context, sec *domain.Section) error {
	if err := sec.ValidateTitle(); err != nil {
		return err
	}
	sec.UpdatedAt = time.Now().UTC()
	return s.sections.Update(ctx, sec)
}

// Reorder persists a full permutation of a template's section order. The
// submitted id list must name exactly the sections currently persisted
// for the template; anything else means the caller reordered a stale
// snapshot and the whole request is rejected. All order indexes are
// written in one transaction so a partial permutation is never visible.
func (s *sectionService) Reorder(ctx context.Context, templateID string, orderedIDs []string) error {
	started := time.Now()
	err := s.reorder(ctx, templateID, orderedIDs)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "section_reorder",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    map[string]any{"template_id": templateID, "sections": len(orderedIDs)},
		StartedAt: started,
	})
	return err
}

func (s *sectionService) reorder(ctx context.Context, templateID string, orderedIDs []string) error {
	existing, err := s.sections.ListByTemplate(ctx, templateID)
	if err != nil {
		return err
	}
	if len(existing) != len(orderedIDs) {
		return fmt.Errorf("order lists %d sections, template has %d: %w",
			len(orderedIDs), len(existing), domain.ErrReorderConflict)
	}
	known := make(map[string]bool, len(existing))
	for _, sec := range existing {
		known[sec.ID] = true
	}
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !known[id] {
			return fmt.Errorf("section %s not in template %s: %w", id, templateID, domain.ErrReorderConflict)
		}
		if seen[id] {
			return fmt.Errorf("section %s listed twice: %w", id, domain.ErrReorderConflict)
		}
		seen[id] = true
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSections := repository.NewSQLiteSectionRepo(tx)
		for i, id := range orderedIDs {
			if err := txSections.UpdateOrderIndex(ctx, id, i); err != nil {
				return fmt.Errorf("updating order of section %s: %w", id, err)
			}
		}
		return nil
	})
}

func (s *sectionService) Delete(ctx context.Context, id string) error {
	return s.sections.Delete(ctx, id)
}
