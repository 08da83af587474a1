package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mhalvorsen/treeline/internal/db"
	"github.com/mhalvorsen/treeline/internal/domain"
)

// sectionColumns is the canonical SELECT column list for sections.
const sectionColumns = `id, template_id, title, order_index, created_at, updated_at`

// SQLiteSectionRepo implements SectionRepo using a SQLite database.
type SQLiteSectionRepo struct {
	db db.DBTX
}

// NewSQLiteSectionRepo creates a new SQLiteSectionRepo.
func NewSQLiteSectionRepo(dbtx db.DBTX) *SQLiteSectionRepo {
	return &SQLiteSectionRepo{db: dbtx}
}

func (r *SQLiteSectionRepo) Create(ctx context.Context, s *domain.Section) error {
	query := `INSERT INTO sections (id, template_id, title, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.TemplateID,
		s.Title,
		s.OrderIndex,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting section: %w", err)
	}
	return nil
}

func (r *SQLiteSectionRepo) GetByID(ctx context.Context, id string) (*domain.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanSection(row)
}

// ListByTemplate returns the template's sections in persisted display order.
// created_at breaks ties so two sections sharing an order_index still list
// deterministically.
func (r *SQLiteSectionRepo) ListByTemplate(ctx context.Context, templateID string) ([]*domain.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE template_id = ? ORDER BY order_index, created_at`
	rows, err := r.db.QueryContext(ctx, query, templateID)
	if err != nil {
		return nil, fmt.Errorf("listing sections by template: %w", err)
	}
	defer rows.Close()
	return r.scanSections(rows)
}

// NextOrderIndex returns MAX(order_index) + 1 for the template, so new
// sections append at the end.
func (r *SQLiteSectionRepo) NextOrderIndex(ctx context.Context, templateID string) (int, error) {
	query := `SELECT COALESCE(MAX(order_index), -1) + 1 FROM sections WHERE template_id = ?`
	var next int
	if err := r.db.QueryRowContext(ctx, query, templateID).Scan(&next); err != nil {
		return 0, fmt.Errorf("computing next order index for template %s: %w", templateID, err)
	}
	return next, nil
}

func (r *SQLiteSectionRepo) Update(ctx context.Context, s *domain.Section) error {
	query := `UPDATE sections SET template_id = ?, title = ?, order_index = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.TemplateID,
		s.Title,
		s.OrderIndex,
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating section: %w", err)
	}
	return requireRowAffected(res, "section")
}

func (r *SQLiteSectionRepo) UpdateOrderIndex(ctx context.Context, id string, orderIndex int) error {
	query := `UPDATE sections SET order_index = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, orderIndex, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("updating section order: %w", err)
	}
	return requireRowAffected(res, "section")
}

func (r *SQLiteSectionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting section: %w", err)
	}
	return requireRowAffected(res, "section")
}

func (r *SQLiteSectionRepo) scanSection(row *sql.Row) (*domain.Section, error) {
	var s domain.Section
	var createdAtStr, updatedAtStr string
	err := row.Scan(&s.ID, &s.TemplateID, &s.Title, &s.OrderIndex, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("section: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning section: %w", err)
	}
	if err := parseTimestamps(&s.CreatedAt, &s.UpdatedAt, createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteSectionRepo) scanSections(rows *sql.Rows) ([]*domain.Section, error) {
	var sections []*domain.Section
	for rows.Next() {
		var s domain.Section
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&s.ID, &s.TemplateID, &s.Title, &s.OrderIndex, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning section row: %w", err)
		}
		if err := parseTimestamps(&s.CreatedAt, &s.UpdatedAt, createdAtStr, updatedAtStr); err != nil {
			return nil, err
		}
		sections = append(sections, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sections: %w", err)
	}
	return sections, nil
}
