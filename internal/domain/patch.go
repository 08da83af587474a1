package domain

import "time"

// TaskPatch describes a partial update to a TaskNode. Nil fields are left
// unchanged. Clearing an optional field is expressed separately from
// setting it, so "leave alone", "set", and "clear" stay distinguishable.
type TaskPatch struct {
	Title         *string
	Description   *string
	DueDate       *time.Time
	ClearDueDate  bool
	AssignedTo    *string
	ClearAssignee bool
	EstimatedDays *int
	OffsetDays    *int

	// Parent, when non-nil, reassigns the task's parent. A ParentChange
	// with a nil ParentID moves the task to the root of its section.
	Parent *ParentChange
}

// ParentChange carries the new parent for a reparenting patch.
type ParentChange struct {
	ParentID *string
}

// MovesParent reports whether applying the patch changes the parent link.
func (p TaskPatch) MovesParent() bool {
	return p.Parent != nil
}

// Apply writes the patch onto the task in place.
func (p TaskPatch) Apply(t *TaskNode) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.ClearDueDate {
		t.DueDate = nil
	}
	if p.AssignedTo != nil {
		a := *p.AssignedTo
		t.AssignedTo = &a
	}
	if p.ClearAssignee {
		t.AssignedTo = nil
	}
	if p.EstimatedDays != nil {
		t.EstimatedDays = *p.EstimatedDays
	}
	if p.OffsetDays != nil {
		t.OffsetDays = *p.OffsetDays
	}
	if p.Parent != nil {
		if p.Parent.ParentID != nil {
			pid := *p.Parent.ParentID
			t.ParentID = &pid
		} else {
			t.ParentID = nil
		}
	}
}
