package repository

import (
	"context"
	"testing"
	"time"

	"github.com/mhalvorsen/treeline/internal/domain"
	"github.com/mhalvorsen/treeline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTaskRepo(t *testing.T) (*SQLiteTaskRepo, *SQLiteSectionRepo, *SQLiteTemplateRepo) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewSQLiteTaskRepo(db), NewSQLiteSectionRepo(db), NewSQLiteTemplateRepo(db)
}

func seedSection(t *testing.T, tplRepo *SQLiteTemplateRepo, secRepo *SQLiteSectionRepo) *domain.Section {
	t.Helper()
	ctx := context.Background()
	tpl := testutil.NewTestTemplate("Onboarding")
	require.NoError(t, tplRepo.Create(ctx, tpl))
	sec := testutil.NewTestSection(tpl.ID, "Week one")
	require.NoError(t, secRepo.Create(ctx, sec))
	return sec
}

func TestTaskRepo_CreateAndGetByID(t *testing.T) {
	taskRepo, secRepo, tplRepo := setupTaskRepo(t)
	ctx := context.Background()
	sec := seedSection(t, tplRepo, secRepo)

	due := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	task := testutil.NewTestTask(sec.ID, "Set up accounts",
		testutil.WithDescription("all SaaS logins"),
		testutil.WithDueDate(due),
		testutil.WithAssignee(domain.AssigneeSelf),
		testutil.WithEstimatedDays(2),
	)
	require.NoError(t, taskRepo.Create(ctx, task))

	fetched, err := taskRepo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Set up accounts", fetched.Title)
	assert.Equal(t, "all SaaS logins", fetched.Description)
	assert.Nil(t, fetched.ParentID)
	require.NotNil(t, fetched.DueDate)
	assert.Equal(t, due, *fetched.DueDate)
	require.NotNil(t, fetched.AssignedTo)
	assert.Equal(t, domain.AssigneeSelf, *fetched.AssignedTo)
	assert.Equal(t, 2, fetched.EstimatedDays)
}

func TestTaskRepo_GetByID_NotFound(t *testing.T) {
	taskRepo, _, _ := setupTaskRepo(t)

	_, err := taskRepo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskRepo_DanglingParentIsInsertable(t *testing.T) {
	taskRepo, secRepo, tplRepo := setupTaskRepo(t)
	ctx := context.Background()
	sec := seedSection(t, tplRepo, secRepo)

	// parent_id is a weak reference: inserting a task whose parent does
	// not exist must succeed.
	task := testutil.NewTestTask(sec.ID, "stray", testutil.WithParentID("deleted-parent"))
	require.NoError(t, taskRepo.Create(ctx, task))

	fetched, err := taskRepo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.ParentID)
	assert.Equal(t, "deleted-parent", *fetched.ParentID)
}

func TestTaskRepo_ListBySection_InsertionOrder(t *testing.T) {
	taskRepo, secRepo, tplRepo := setupTaskRepo(t)
	ctx := context.Background()
	sec := seedSection(t, tplRepo, secRepo)

	titles := []string{"first", "second", "third", "fourth"}
	for _, title := range titles {
		require.NoError(t, taskRepo.Create(ctx, testutil.NewTestTask(sec.ID, title)))
	}

	list, err := taskRepo.ListBySection(ctx, sec.ID)
	require.NoError(t, err)
	require.Len(t, list, len(titles))
	for i, task := range list {
		assert.Equal(t, titles[i], task.Title)
	}
}

func TestTaskRepo_ListByTemplate_SpansSections(t *testing.T) {
	taskRepo, secRepo, tplRepo := setupTaskRepo(t)
	ctx := context.Background()

	tpl := testutil.NewTestTemplate("Launch")
	require.NoError(t, tplRepo.Create(ctx, tpl))
	s1 := testutil.NewTestSection(tpl.ID, "Plan")
	s2 := testutil.NewTestSection(tpl.ID, "Build", testutil.WithOrderIndex(1))
	require.NoError(t, secRepo.Create(ctx, s1))
	require.NoError(t, secRepo.Create(ctx, s2))

	require.NoError(t, taskRepo.Create(ctx, testutil.NewTestTask(s1.ID, "brief")))
	require.NoError(t, taskRepo.Create(ctx, testutil.NewTestTask(s2.ID, "scaffold")))

	// A task in another template must not leak in.
	other := testutil.NewTestTemplate("Other")
	require.NoError(t, tplRepo.Create(ctx, other))
	otherSec := testutil.NewTestSection(other.ID, "Elsewhere")
	require.NoError(t, secRepo.Create(ctx, otherSec))
	require.NoError(t, taskRepo.Create(ctx, testutil.NewTestTask(otherSec.ID, "unrelated")))

	list, err := taskRepo.ListByTemplate(ctx, tpl.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "brief", list[0].Title)
	assert.Equal(t, "scaffold", list[1].Title)
}

func TestTaskRepo_Update(t *testing.T) {
	taskRepo, secRepo, tplRepo := setupTaskRepo(t)
	ctx := context.Background()
	sec := seedSection(t, tplRepo, secRepo)

	task := testutil.NewTestTask(sec.ID, "old title")
	require.NoError(t, taskRepo.Create(ctx, task))

	task.Title = "new title"
	task.ParentID = nil
	task.UpdatedAt = time.Now().UTC()
	require.NoError(t, taskRepo.Update(ctx, task))

	fetched, err := taskRepo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "new title", fetched.Title)
}

func TestTaskRepo_Update_MissingRowIsNotFound(t *testing.T) {
	taskRepo, secRepo, tplRepo := setupTaskRepo(t)
	ctx := context.Background()
	sec := seedSection(t, tplRepo, secRepo)

	ghost := testutil.NewTestTask(sec.ID, "ghost")
	err := taskRepo.Update(ctx, ghost)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskRepo_Delete_DoesNotCascadeToChildren(t *testing.T) {
	taskRepo, secRepo, tplRepo := setupTaskRepo(t)
	ctx := context.Background()
	sec := seedSection(t, tplRepo, secRepo)

	parent := testutil.NewTestTask(sec.ID, "parent")
	require.NoError(t, taskRepo.Create(ctx, parent))
	child := testutil.NewTestTask(sec.ID, "child", testutil.WithParentID(parent.ID))
	require.NoError(t, taskRepo.Create(ctx, child))

	require.NoError(t, taskRepo.Delete(ctx, parent.ID))

	_, err := taskRepo.GetByID(ctx, parent.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The child survives with its parent pointer dangling.
	survivor, err := taskRepo.GetByID(ctx, child.ID)
	require.NoError(t, err)
	require.NotNil(t, survivor.ParentID)
	assert.Equal(t, parent.ID, *survivor.ParentID)
}

func TestTaskRepo_Delete_MissingRowIsNotFound(t *testing.T) {
	taskRepo, _, _ := setupTaskRepo(t)
	err := taskRepo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
