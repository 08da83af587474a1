package outline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mhalvorsen/treeline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Drop_ConfirmsNewOrder(t *testing.T) {
	engine, _, sections := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, engine.BeginDrag(ctx, testTemplateID))
	assert.Equal(t, PhaseDragging, engine.Phase(testTemplateID))

	require.NoError(t, engine.Drop(ctx, testTemplateID, "s3", 0))
	assert.Equal(t, PhaseConfirmed, engine.Phase(testTemplateID))

	order, err := engine.SectionOrder(ctx, testTemplateID)
	require.NoError(t, err)
	assert.Equal(t, []string{"s3", "s1", "s2"}, order)

	// The store saw the full ordered id list and applied it.
	persisted, err := sections.ListByTemplate(ctx, testTemplateID)
	require.NoError(t, err)
	assert.Equal(t, "s3", persisted[0].ID)
}

func TestEngine_Drop_OwnIndexIsNoOp(t *testing.T) {
	engine, _, sections := newTestEngine(t)
	ctx := context.Background()

	calls := 0
	sections.reorderHook = func([]string) error {
		calls++
		return nil
	}

	require.NoError(t, engine.Drop(ctx, testTemplateID, "s2", 1))
	assert.Equal(t, 0, calls, "no persistence request for a no-op drop")
	assert.Equal(t, PhaseIdle, engine.Phase(testTemplateID))

	order, err := engine.SectionOrder(ctx, testTemplateID)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2", "s3"}, order)
}

func TestEngine_Drop_UnknownSection(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	err := engine.Drop(ctx, testTemplateID, "nope", 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, PhaseIdle, engine.Phase(testTemplateID))
}

func TestEngine_Drop_FailureRollsBackToConfirmedOrder(t *testing.T) {
	engine, _, sections := newTestEngine(t)
	ctx := context.Background()

	// First gesture succeeds and becomes the confirmed baseline.
	require.NoError(t, engine.Drop(ctx, testTemplateID, "s3", 0))

	sections.reorderHook = func([]string) error {
		return domain.ErrReorderConflict
	}
	err := engine.Drop(ctx, testTemplateID, "s2", 0)
	assert.ErrorIs(t, err, domain.ErrReorderConflict)
	assert.Equal(t, PhaseRolledBack, engine.Phase(testTemplateID))

	order, err := engine.SectionOrder(ctx, testTemplateID)
	require.NoError(t, err)
	assert.Equal(t, []string{"s3", "s1", "s2"}, order, "reverted to last confirmed order")
}

func TestEngine_CancelDrag(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, engine.BeginDrag(ctx, testTemplateID))
	engine.CancelDrag(testTemplateID)
	assert.Equal(t, PhaseIdle, engine.Phase(testTemplateID))

	order, err := engine.SectionOrder(ctx, testTemplateID)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2", "s3"}, order)
}

// A drop issued while an earlier request is still in flight must win even
// when the earlier response arrives last.
func TestEngine_Drop_StaleResponseSuppressed(t *testing.T) {
	engine, _, sections := newTestEngine(t)
	ctx := context.Background()
	require.NoError(t, engine.Load(ctx, testTemplateID))

	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	var mu sync.Mutex
	calls := 0
	sections.reorderHook = func([]string) error {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(firstStarted)
			<-releaseFirst
		}
		return nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		firstErr = engine.Drop(ctx, testTemplateID, "s1", 2) // → s2 s3 s1
	}()

	<-firstStarted
	// Second gesture lands while the first request is still in flight.
	require.NoError(t, engine.Drop(ctx, testTemplateID, "s3", 0)) // → s3 s2 s1

	close(releaseFirst)
	wg.Wait()

	assert.NoError(t, firstErr, "superseded request resolves quietly")
	assert.Equal(t, PhaseConfirmed, engine.Phase(testTemplateID))

	order, err := engine.SectionOrder(ctx, testTemplateID)
	require.NoError(t, err)
	assert.Equal(t, []string{"s3", "s2", "s1"}, order, "latest gesture wins")
}

// Same race, but the stale request fails: its error must not roll back
// the newer confirmed order either.
func TestEngine_Drop_StaleFailureDoesNotRollBack(t *testing.T) {
	engine, _, sections := newTestEngine(t)
	ctx := context.Background()
	require.NoError(t, engine.Load(ctx, testTemplateID))

	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	var mu sync.Mutex
	calls := 0
	sections.reorderHook = func([]string) error {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(firstStarted)
			<-releaseFirst
			return errors.New("timeout")
		}
		return nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = engine.Drop(ctx, testTemplateID, "s1", 2)
	}()

	<-firstStarted
	require.NoError(t, engine.Drop(ctx, testTemplateID, "s3", 0))
	close(releaseFirst)
	wg.Wait()

	assert.Equal(t, PhaseConfirmed, engine.Phase(testTemplateID))
	order, err := engine.SectionOrder(ctx, testTemplateID)
	require.NoError(t, err)
	assert.Equal(t, []string{"s3", "s2", "s1"}, order)
}

func TestGesturePhase_String(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "optimistically_reordered", PhaseOptimisticallyReordered.String())
	assert.Equal(t, "rolled_back", PhaseRolledBack.String())
	assert.Equal(t, "unknown", GesturePhase(99).String())
}
