package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mhalvorsen/treeline/internal/db"
	"github.com/mhalvorsen/treeline/internal/domain"
)

// SQLiteTemplateRepo implements TemplateRepo using a SQLite database.
type SQLiteTemplateRepo struct {
	db db.DBTX
}

// NewSQLiteTemplateRepo creates a new SQLiteTemplateRepo.
func NewSQLiteTemplateRepo(dbtx db.DBTX) *SQLiteTemplateRepo {
	return &SQLiteTemplateRepo{db: dbtx}
}

func (r *SQLiteTemplateRepo) Create(ctx context.Context, t *domain.Template) error {
	query := `INSERT INTO templates (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	query := `SELECT id, name, created_at, updated_at FROM templates WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var t domain.Template
	var createdAtStr, updatedAtStr string
	if err := row.Scan(&t.ID, &t.Name, &createdAtStr, &updatedAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("template: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning template: %w", err)
	}
	if err := parseTimestamps(&t.CreatedAt, &t.UpdatedAt, createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *SQLiteTemplateRepo) List(ctx context.Context) ([]*domain.Template, error) {
	query := `SELECT id, name, created_at, updated_at FROM templates ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	var templates []*domain.Template
	for rows.Next() {
		var t domain.Template
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&t.ID, &t.Name, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning template row: %w", err)
		}
		if err := parseTimestamps(&t.CreatedAt, &t.UpdatedAt, createdAtStr, updatedAtStr); err != nil {
			return nil, err
		}
		templates = append(templates, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	return templates, nil
}

func (r *SQLiteTemplateRepo) Update(ctx context.Context, t *domain.Template) error {
	query := `UPDATE templates SET name = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Name,
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating template: %w", err)
	}
	return requireRowAffected(res, "template")
}

func (r *SQLiteTemplateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	return requireRowAffected(res, "template")
}

// parseTimestamps parses the RFC3339 created_at/updated_at column pair.
func parseTimestamps(createdAt, updatedAt *time.Time, createdAtStr, updatedAtStr string) error {
	var err error
	*createdAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	*updatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return fmt.Errorf("parsing updated_at: %w", err)
	}
	return nil
}

// requireRowAffected maps a zero-row UPDATE/DELETE to ErrNotFound so
// concurrent deletions surface instead of silently succeeding.
func requireRowAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, domain.ErrNotFound)
	}
	return nil
}
