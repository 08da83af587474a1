package domain

import (
	"fmt"
	"strings"
	"time"
)

// AssigneeSelf is the sentinel assignee meaning "whoever applies the
// template", as opposed to a concrete team member id.
const AssigneeSelf = "self"

// TaskNode is a unit of work inside a template. ParentID is a weak
// reference: it names a relationship to another task in the same section
// but carries no ownership, and it may dangle after the parent is deleted.
// Tree structure is always derived from these parent pointers; a children
// list is never persisted.
type TaskNode struct {
	ID            string
	SectionID     string
	ParentID      *string
	Title         string
	Description   string
	DueDate       *time.Time
	AssignedTo    *string
	EstimatedDays int
	OffsetDays    int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidateTitle checks that the task has a non-blank title.
func (t *TaskNode) ValidateTitle() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title must not be empty: %w", ErrValidation)
	}
	return nil
}

// IsRoot reports whether the task sits directly under its section.
func (t *TaskNode) IsRoot() bool {
	return t.ParentID == nil
}

// Clone returns a deep copy of the task, including pointer fields.
func (t *TaskNode) Clone() *TaskNode {
	c := *t
	if t.ParentID != nil {
		pid := *t.ParentID
		c.ParentID = &pid
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.AssignedTo != nil {
		a := *t.AssignedTo
		c.AssignedTo = &a
	}
	return &c
}

// AssigneeLabel returns a human-readable assignee, or "" when unassigned.
func (t *TaskNode) AssigneeLabel() string {
	if t.AssignedTo == nil {
		return ""
	}
	if *t.AssignedTo == AssigneeSelf {
		return "me"
	}
	return *t.AssignedTo
}
