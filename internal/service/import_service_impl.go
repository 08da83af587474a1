package service

import (
	"context"
	"fmt"

	"github.com/mhalvorsen/treeline/internal/db"
	"github.com/mhalvorsen/treeline/internal/importer"
	"github.com/mhalvorsen/treeline/internal/repository"
)

type importService struct {
	uow db.UnitOfWork
}

// NewImportService creates a service that imports whole templates from
// JSON files. All rows are written in one transaction; a failing row
// rolls back the entire import.
func NewImportService(uow db.UnitOfWork) ImportService {
	return &importService{uow: uow}
}

func (s *importService) ImportTemplate(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportTemplateFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	generated, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		templates := repository.NewSQLiteTemplateRepo(tx)
		sections := repository.NewSQLiteSectionRepo(tx)
		tasks := repository.NewSQLiteTaskRepo(tx)

		if err := templates.Create(ctx, generated.Template); err != nil {
			return fmt.Errorf("creating template: %w", err)
		}
		for _, sec := range generated.Sections {
			if err := sections.Create(ctx, sec); err != nil {
				return fmt.Errorf("creating section %q: %w", sec.Title, err)
			}
		}
		for _, task := range generated.Tasks {
			if err := tasks.Create(ctx, task); err != nil {
				return fmt.Errorf("creating task %q: %w", task.Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Template:     generated.Template,
		SectionCount: len(generated.Sections),
		TaskCount:    len(generated.Tasks),
	}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
