package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mhalvorsen/treeline/internal/db"
	"github.com/mhalvorsen/treeline/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, section_id, parent_id, title, description,
		due_date, assigned_to, estimated_days, offset_days, created_at, updated_at`

// taskColumnsAliased is the same column list prefixed with "t." for join queries.
const taskColumnsAliased = `t.id, t.section_id, t.parent_id, t.title, t.description,
		t.due_date, t.assigned_to, t.estimated_days, t.offset_days, t.created_at, t.updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(dbtx db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: dbtx}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.TaskNode) error {
	query := `INSERT INTO tasks (id, section_id, parent_id, title, description,
		due_date, assigned_to, estimated_days, offset_days, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.SectionID,
		t.ParentID, // *string: nil becomes SQL NULL
		t.Title,
		t.Description,
		nullableTimeToString(t.DueDate, dateLayout),
		t.AssignedTo,
		t.EstimatedDays,
		t.OffsetDays,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.TaskNode, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanTask(row)
}

// ListBySection returns the section's tasks in insertion order. Sibling
// order has no persisted key; rowid keeps the flat list in insertion
// order even when several tasks share a created_at second.
func (r *SQLiteTaskRepo) ListBySection(ctx context.Context, sectionID string) ([]*domain.TaskNode, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE section_id = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, sectionID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by section: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListByTemplate(ctx context.Context, templateID string) ([]*domain.TaskNode, error) {
	query := `SELECT ` + taskColumnsAliased + ` FROM tasks t
		JOIN sections s ON t.section_id = s.id
		WHERE s.template_id = ?
		ORDER BY t.rowid`
	rows, err := r.db.QueryContext(ctx, query, templateID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by template: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.TaskNode) error {
	query := `UPDATE tasks SET section_id = ?, parent_id = ?, title = ?, description = ?,
		due_date = ?, assigned_to = ?, estimated_days = ?, offset_days = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.SectionID,
		t.ParentID,
		t.Title,
		t.Description,
		nullableTimeToString(t.DueDate, dateLayout),
		t.AssignedTo,
		t.EstimatedDays,
		t.OffsetDays,
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireRowAffected(res, "task")
}

// Delete removes only the named task. Descendants keep their parent_id and
// are promoted to section roots on the next outline build.
func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireRowAffected(res, "task")
}

func (r *SQLiteTaskRepo) scanTask(row *sql.Row) (*domain.TaskNode, error) {
	var t domain.TaskNode
	var parentID, dueDateStr, assignedTo sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&t.ID, &t.SectionID, &parentID, &t.Title, &t.Description,
		&dueDateStr, &assignedTo, &t.EstimatedDays, &t.OffsetDays,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	return r.populateTask(&t, parentID, dueDateStr, assignedTo, createdAtStr, updatedAtStr)
}

func (r *SQLiteTaskRepo) scanTasks(rows *sql.Rows) ([]*domain.TaskNode, error) {
	var tasks []*domain.TaskNode
	for rows.Next() {
		var t domain.TaskNode
		var parentID, dueDateStr, assignedTo sql.NullString
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&t.ID, &t.SectionID, &parentID, &t.Title, &t.Description,
			&dueDateStr, &assignedTo, &t.EstimatedDays, &t.OffsetDays,
			&createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		task, err := r.populateTask(&t, parentID, dueDateStr, assignedTo, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// populateTask fills in parsed fields on a TaskNode after scanning raw strings.
func (r *SQLiteTaskRepo) populateTask(
	t *domain.TaskNode,
	parentID, dueDateStr, assignedTo sql.NullString,
	createdAtStr, updatedAtStr string,
) (*domain.TaskNode, error) {
	t.ParentID = nullableStr(parentID)
	t.AssignedTo = nullableStr(assignedTo)
	t.DueDate = parseNullableTime(dueDateStr, dateLayout)
	if err := parseTimestamps(&t.CreatedAt, &t.UpdatedAt, createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return t, nil
}
