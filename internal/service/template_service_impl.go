package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mhalvorsen/treeline/internal/domain"
	"github.com/mhalvorsen/treeline/internal/repository"
)

type templateService struct {
	templates repository.TemplateRepo
}

func NewTemplateService(templates repository.TemplateRepo) TemplateService {
	return &templateService{templates: templates}
}

func (s *templateService) Create(ctx context.Context, t *domain.Template) error {
	if err := t.ValidateName(); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.templates.Create(ctx, t)
}

func (s *templateService) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	return s.templates.GetByID(ctx, id)
}

func (s *templateService) List(ctx context.Context) ([]*domain.Template, error) {
	return s.templates.List(ctx)
}

func (s *templateService) Rename(ctx context.Context, id, name string) (*domain.Template, error) {
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Name = name
	if err := t.ValidateName(); err != nil {
		return nil, err
	}
	t.UpdatedAt = time.Now().UTC()
	if err := s.templates.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *templateService) Delete(ctx context.Context, id string) error {
	return s.templates.Delete(ctx, id)
}
