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

func TestTemplateRepo_CreateGetListUpdateDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTemplateRepo(db)
	ctx := context.Background()

	tpl := testutil.NewTestTemplate("Client onboarding")
	require.NoError(t, repo.Create(ctx, tpl))

	fetched, err := repo.GetByID(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Client onboarding", fetched.Name)

	second := testutil.NewTestTemplate("Website launch")
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	tpl.Name = "Client onboarding v2"
	tpl.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, tpl))
	fetched, err = repo.GetByID(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Client onboarding v2", fetched.Name)

	require.NoError(t, repo.Delete(ctx, tpl.ID))
	_, err = repo.GetByID(ctx, tpl.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplateRepo_UpdateMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTemplateRepo(db)

	ghost := testutil.NewTestTemplate("ghost")
	err := repo.Update(context.Background(), ghost)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
