package repository

import (
	"context"
	"testing"

	"github.com/mhalvorsen/treeline/internal/domain"
	"github.com/mhalvorsen/treeline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCascadeDelete_SectionToTasks verifies that deleting a section removes
// every task in it, including deeply nested subtasks.
func TestCascadeDelete_SectionToTasks(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	tplRepo := NewSQLiteTemplateRepo(db)
	secRepo := NewSQLiteSectionRepo(db)
	taskRepo := NewSQLiteTaskRepo(db)

	tpl := testutil.NewTestTemplate("Cascade")
	require.NoError(t, tplRepo.Create(ctx, tpl))
	sec := testutil.NewTestSection(tpl.ID, "Doomed")
	require.NoError(t, secRepo.Create(ctx, sec))

	root := testutil.NewTestTask(sec.ID, "root")
	require.NoError(t, taskRepo.Create(ctx, root))
	child := testutil.NewTestTask(sec.ID, "child", testutil.WithParentID(root.ID))
	require.NoError(t, taskRepo.Create(ctx, child))
	grandchild := testutil.NewTestTask(sec.ID, "grandchild", testutil.WithParentID(child.ID))
	require.NoError(t, taskRepo.Create(ctx, grandchild))

	require.NoError(t, secRepo.Delete(ctx, sec.ID))

	for _, id := range []string{root.ID, child.ID, grandchild.ID} {
		_, err := taskRepo.GetByID(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}
}

// TestCascadeDelete_TemplateToSectionsAndTasks verifies the full chain:
// template → sections → tasks.
func TestCascadeDelete_TemplateToSectionsAndTasks(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	tplRepo := NewSQLiteTemplateRepo(db)
	secRepo := NewSQLiteSectionRepo(db)
	taskRepo := NewSQLiteTaskRepo(db)

	tpl := testutil.NewTestTemplate("Whole thing")
	require.NoError(t, tplRepo.Create(ctx, tpl))
	sec := testutil.NewTestSection(tpl.ID, "S")
	require.NoError(t, secRepo.Create(ctx, sec))
	task := testutil.NewTestTask(sec.ID, "T")
	require.NoError(t, taskRepo.Create(ctx, task))

	require.NoError(t, tplRepo.Delete(ctx, tpl.ID))

	_, err := secRepo.GetByID(ctx, sec.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = taskRepo.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestTaskDelete_LeavesDescendantsBehind pins the no-cascade policy for
// task deletion: descendants stay in the store with dangling parents.
func TestTaskDelete_LeavesDescendantsBehind(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	tplRepo := NewSQLiteTemplateRepo(db)
	secRepo := NewSQLiteSectionRepo(db)
	taskRepo := NewSQLiteTaskRepo(db)

	tpl := testutil.NewTestTemplate("Orphans")
	require.NoError(t, tplRepo.Create(ctx, tpl))
	sec := testutil.NewTestSection(tpl.ID, "S")
	require.NoError(t, secRepo.Create(ctx, sec))

	parent := testutil.NewTestTask(sec.ID, "parent")
	require.NoError(t, taskRepo.Create(ctx, parent))
	child := testutil.NewTestTask(sec.ID, "child", testutil.WithParentID(parent.ID))
	require.NoError(t, taskRepo.Create(ctx, child))

	require.NoError(t, taskRepo.Delete(ctx, parent.ID))

	remaining, err := taskRepo.ListBySection(ctx, sec.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, child.ID, remaining[0].ID)
}
