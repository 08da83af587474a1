package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestTaskPatch_Apply_PartialFields(t *testing.T) {
	due := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	task := &TaskNode{Title: "Old", Description: "keep me", DueDate: &due}

	TaskPatch{Title: strPtr("New")}.Apply(task)

	assert.Equal(t, "New", task.Title)
	assert.Equal(t, "keep me", task.Description)
	assert.Equal(t, due, *task.DueDate)
}

func TestTaskPatch_Apply_ClearsOptionalFields(t *testing.T) {
	due := time.Now().UTC()
	self := AssigneeSelf
	task := &TaskNode{Title: "T", DueDate: &due, AssignedTo: &self}

	TaskPatch{ClearDueDate: true, ClearAssignee: true}.Apply(task)

	assert.Nil(t, task.DueDate)
	assert.Nil(t, task.AssignedTo)
}

func TestTaskPatch_Apply_Reparent(t *testing.T) {
	pid := "p1"
	task := &TaskNode{Title: "T", ParentID: &pid}

	newParent := "p2"
	patch := TaskPatch{Parent: &ParentChange{ParentID: &newParent}}
	assert.True(t, patch.MovesParent())
	patch.Apply(task)
	assert.Equal(t, "p2", *task.ParentID)

	TaskPatch{Parent: &ParentChange{}}.Apply(task)
	assert.Nil(t, task.ParentID, "nil ParentID in a ParentChange promotes to root")

	assert.False(t, TaskPatch{Title: strPtr("x")}.MovesParent())
}
