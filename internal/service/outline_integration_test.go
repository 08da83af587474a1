package service

import (
	"context"
	"testing"

	"github.com/mhalvorsen/treeline/internal/domain"
	"github.com/mhalvorsen/treeline/internal/outline"
	"github.com/mhalvorsen/treeline/internal/repository"
	"github.com/mhalvorsen/treeline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// End-to-end over real SQLite: the outline engine driving the service
// layer, the way the CLI wires it.
func TestOutlineEngine_OverServices(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	templates := NewTemplateService(repository.NewSQLiteTemplateRepo(db))
	sections := NewSectionService(repository.NewSQLiteSectionRepo(db), testutil.NewTestUoW(db))
	tasks := NewTaskService(repository.NewSQLiteTaskRepo(db), repository.NewSQLiteSectionRepo(db))

	tpl := &domain.Template{Name: "Onboarding"}
	require.NoError(t, templates.Create(ctx, tpl))
	kickoff := &domain.Section{TemplateID: tpl.ID, Title: "Kickoff"}
	build := &domain.Section{TemplateID: tpl.ID, Title: "Build"}
	require.NoError(t, sections.Create(ctx, kickoff))
	require.NoError(t, sections.Create(ctx, build))

	engine := outline.NewEngine(tasks, sections)
	require.NoError(t, engine.Load(ctx, tpl.ID))

	call, err := engine.CreateTask(ctx, tpl.ID, kickoff.ID, nil, "Intro call", "")
	require.NoError(t, err)
	agenda, err := engine.AddSubtask(ctx, tpl.ID, call.ID, "Send agenda")
	require.NoError(t, err)
	_, err = engine.CreateTask(ctx, tpl.ID, build.ID, nil, "Draft site", "")
	require.NoError(t, err)

	groups, err := engine.SectionForests(ctx, tpl.ID)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Len(t, groups[0].Roots, 1)
	assert.Equal(t, "Intro call", groups[0].Roots[0].Task.Title)
	require.Len(t, groups[0].Roots[0].Children, 1)
	assert.Equal(t, agenda.ID, groups[0].Roots[0].Children[0].Task.ID)

	// Reorder through the engine lands in SQLite.
	require.NoError(t, engine.Drop(ctx, tpl.ID, build.ID, 0))
	persisted, err := sections.ListByTemplate(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, build.ID, persisted[0].ID)

	// Deleting the parent promotes the subtask on rebuild.
	require.NoError(t, engine.DeleteTask(ctx, tpl.ID, call.ID))
	groups, err = engine.SectionForests(ctx, tpl.ID)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	kickoffGroup := groups[1]
	require.Len(t, kickoffGroup.Roots, 1)
	assert.Equal(t, agenda.ID, kickoffGroup.Roots[0].Task.ID)
}
