package outline

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/mhalvorsen/treeline/internal/domain"
)

// GesturePhase tracks where a template's section-reorder gesture stands.
type GesturePhase int

const (
	PhaseIdle GesturePhase = iota
	PhaseDragging
	PhaseOptimisticallyReordered
	PhaseReconciling
	PhaseConfirmed
	PhaseRolledBack
)

func (p GesturePhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseOptimisticallyReordered:
		return "optimistically_reordered"
	case PhaseReconciling:
		return "reconciling"
	case PhaseConfirmed:
		return "confirmed"
	case PhaseRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

// SectionTree is one section with its derived task trees, in display order.
// Section is nil for the trailing group of tasks whose section id resolves
// to nothing (same promotion policy as orphaned tasks: surfaced, not lost).
type SectionTree struct {
	Section *domain.Section
	Roots   []*Node
}

// Engine owns the per-template read model: the cached flat task list, the
// cached section order, and the memoized forest derived from them. All
// mutations flow through it; the cache is replaced only after a confirmed
// store round trip, never rewritten speculatively node-by-node. Section
// reorders are the one optimistic exception, and they carry a sequence
// number so a stale response can never clobber a newer order.
type Engine struct {
	tasks    TaskStore
	sections SectionStore

	mu        sync.Mutex
	templates map[string]*templateState
	subs      []func(templateID string)
}

type templateState struct {
	sections  []*domain.Section
	tasks     []*domain.TaskNode
	order     []string // displayed section order, possibly optimistic
	confirmed []string // last store-confirmed section order
	forest    []*Node  // memoized; nil means rebuild on next read
	phase     GesturePhase
	seq       uint64 // latest reorder request issued for this template
}

// NewEngine creates an outline engine over the given stores.
func NewEngine(tasks TaskStore, sections SectionStore) *Engine {
	return &Engine{
		tasks:     tasks,
		sections:  sections,
		templates: make(map[string]*templateState),
	}
}

// Subscribe registers a change listener invoked (on the mutating
// goroutine) whenever a template's cached outline changes.
func (e *Engine) Subscribe(fn func(templateID string)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, fn)
}

func (e *Engine) notify(templateID string) {
	e.mu.Lock()
	subs := slices.Clone(e.subs)
	e.mu.Unlock()
	for _, fn := range subs {
		fn(templateID)
	}
}

// Load populates (or re-populates) the cache for a template from the
// stores and notifies subscribers.
func (e *Engine) Load(ctx context.Context, templateID string) error {
	if err := e.refresh(ctx, templateID); err != nil {
		return err
	}
	e.notify(templateID)
	return nil
}

// refresh replaces the template's cached flat list and section order with
// fresh store state. While a reorder is reconciling, the optimistic
// section order is kept so the in-flight gesture is not visually undone.
func (e *Engine) refresh(ctx context.Context, templateID string) error {
	secs, err := e.sections.ListByTemplate(ctx, templateID)
	if err != nil {
		return fmt.Errorf("listing sections: %w", err)
	}
	tasks, err := e.tasks.ListByTemplate(ctx, templateID)
	if err != nil {
		return fmt.Errorf("listing tasks: %w", err)
	}

	serverOrder := make([]string, 0, len(secs))
	for _, s := range secs {
		serverOrder = append(serverOrder, s.ID)
	}

	e.mu.Lock()
	st, ok := e.templates[templateID]
	if !ok {
		st = &templateState{}
		e.templates[templateID] = st
	}
	st.sections = secs
	st.tasks = tasks
	st.forest = nil
	st.confirmed = slices.Clone(serverOrder)
	if st.phase != PhaseOptimisticallyReordered && st.phase != PhaseReconciling {
		st.order = serverOrder
	}
	e.mu.Unlock()
	return nil
}

// stateFor returns the template's cached state, loading it on first use.
func (e *Engine) stateFor(ctx context.Context, templateID string) (*templateState, error) {
	e.mu.Lock()
	st, ok := e.templates[templateID]
	e.mu.Unlock()
	if ok {
		return st, nil
	}
	if err := e.refresh(ctx, templateID); err != nil {
		return nil, err
	}
	e.mu.Lock()
	st = e.templates[templateID]
	e.mu.Unlock()
	return st, nil
}

// Forest returns the memoized global forest for the template, building it
// from the cached flat list if needed.
func (e *Engine) Forest(ctx context.Context, templateID string) ([]*Node, error) {
	st, err := e.stateFor(ctx, templateID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if st.forest == nil {
		st.forest = BuildForest(st.tasks)
	}
	return st.forest, nil
}

// SectionForests returns the forest grouped by section in display order.
// Tasks whose section id is unknown are gathered into a trailing group
// with a nil Section rather than dropped.
func (e *Engine) SectionForests(ctx context.Context, templateID string) ([]SectionTree, error) {
	forest, err := e.Forest(ctx, templateID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	st := e.templates[templateID]
	order := slices.Clone(st.order)
	byID := make(map[string]*domain.Section, len(st.sections))
	for _, s := range st.sections {
		byID[s.ID] = s
	}
	e.mu.Unlock()

	rootsBySection := make(map[string][]*Node)
	for _, root := range forest {
		sid := root.Task.SectionID
		rootsBySection[sid] = append(rootsBySection[sid], root)
	}

	out := make([]SectionTree, 0, len(order)+1)
	for _, sid := range order {
		out = append(out, SectionTree{Section: byID[sid], Roots: rootsBySection[sid]})
		delete(rootsBySection, sid)
	}
	if len(rootsBySection) > 0 {
		var strays []*Node
		for _, root := range forest {
			if _, ok := rootsBySection[root.Task.SectionID]; ok {
				strays = append(strays, root)
			}
		}
		out = append(out, SectionTree{Roots: strays})
	}
	return out, nil
}

// SectionOrder returns the displayed section-id order, which may be
// optimistic while a reorder reconciles.
func (e *Engine) SectionOrder(ctx context.Context, templateID string) ([]string, error) {
	st, err := e.stateFor(ctx, templateID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(st.order), nil
}

// Phase returns the template's current reorder gesture phase.
func (e *Engine) Phase(templateID string) GesturePhase {
	e.mu.Lock()
	defer e.mu.Unlock()
	if st, ok := e.templates[templateID]; ok {
		return st.phase
	}
	return PhaseIdle
}

// ── mutation coordination ───────────────────────────────────────────────

// CreateTask validates and persists a new task, then refreshes the cache.
// The cached forest is untouched when the store call fails.
func (e *Engine) CreateTask(ctx context.Context, templateID, sectionID string, parentID *string, title, description string) (*domain.TaskNode, error) {
	st, err := e.stateFor(ctx, templateID)
	if err != nil {
		return nil, err
	}

	task := &domain.TaskNode{
		SectionID:   sectionID,
		ParentID:    parentID,
		Title:       title,
		Description: description,
	}
	if err := task.ValidateTitle(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	if !slices.ContainsFunc(st.sections, func(s *domain.Section) bool { return s.ID == sectionID }) {
		e.mu.Unlock()
		return nil, fmt.Errorf("section %s not in template: %w", sectionID, domain.ErrValidation)
	}
	if parentID != nil {
		parent := findTask(st.tasks, *parentID)
		if parent == nil {
			e.mu.Unlock()
			return nil, fmt.Errorf("parent task %s not in template: %w", *parentID, domain.ErrValidation)
		}
		if parent.SectionID != sectionID {
			e.mu.Unlock()
			return nil, fmt.Errorf("parent task belongs to another section: %w", domain.ErrValidation)
		}
	}
	e.mu.Unlock()

	if err := e.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	if err := e.refresh(ctx, templateID); err != nil {
		return nil, err
	}
	e.notify(templateID)
	return task, nil
}

// AddSubtask is sugar over CreateTask that fixes the parent and inherits
// its section.
func (e *Engine) AddSubtask(ctx context.Context, templateID, parentID, title string) (*domain.TaskNode, error) {
	st, err := e.stateFor(ctx, templateID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	parent := findTask(st.tasks, parentID)
	e.mu.Unlock()
	if parent == nil {
		return nil, fmt.Errorf("parent task %s: %w", parentID, domain.ErrNotFound)
	}
	return e.CreateTask(ctx, templateID, parent.SectionID, &parentID, title, "")
}

// UpdateTask applies a patch to a task. When the patch changes the parent
// link, section containment and acyclicity are re-validated against the
// cached flat list before the store is touched. A not-found result from
// the store (concurrent deletion) refreshes the cache before returning.
func (e *Engine) UpdateTask(ctx context.Context, templateID, id string, patch domain.TaskPatch) (*domain.TaskNode, error) {
	st, err := e.stateFor(ctx, templateID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	cached := findTask(st.tasks, id)
	tasksSnapshot := st.tasks
	e.mu.Unlock()

	if cached == nil {
		// The id may be newer than our cache; look again after a refresh.
		if err := e.refresh(ctx, templateID); err != nil {
			return nil, err
		}
		e.mu.Lock()
		cached = findTask(st.tasks, id)
		tasksSnapshot = st.tasks
		e.mu.Unlock()
		if cached == nil {
			e.notify(templateID)
			return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
		}
	}

	updated := cached.Clone()
	patch.Apply(updated)
	if patch.Title != nil {
		if err := updated.ValidateTitle(); err != nil {
			return nil, err
		}
	}
	if patch.MovesParent() && updated.ParentID != nil {
		newParent := *updated.ParentID
		parent := findTask(tasksSnapshot, newParent)
		if parent == nil {
			return nil, fmt.Errorf("parent task %s not in template: %w", newParent, domain.ErrValidation)
		}
		if parent.SectionID != updated.SectionID {
			return nil, fmt.Errorf("parent task belongs to another section: %w", domain.ErrValidation)
		}
		if WouldCreateCycle(tasksSnapshot, id, newParent) {
			return nil, fmt.Errorf("moving task under its own descendant: %w", domain.ErrValidation)
		}
	}

	if err := e.tasks.Update(ctx, updated); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Deleted concurrently; resync so the stale node disappears.
			if refreshErr := e.refresh(ctx, templateID); refreshErr == nil {
				e.notify(templateID)
			}
		}
		return nil, fmt.Errorf("updating task: %w", err)
	}
	if err := e.refresh(ctx, templateID); err != nil {
		return nil, err
	}
	e.notify(templateID)
	return updated, nil
}

// DeleteTask removes a task without cascading: descendants become section
// roots on the rebuild that follows. Confirming destructive intent is the
// caller's job.
func (e *Engine) DeleteTask(ctx context.Context, templateID, id string) error {
	if _, err := e.stateFor(ctx, templateID); err != nil {
		return err
	}
	if err := e.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			if refreshErr := e.refresh(ctx, templateID); refreshErr == nil {
				e.notify(templateID)
			}
		}
		return fmt.Errorf("deleting task: %w", err)
	}
	if err := e.refresh(ctx, templateID); err != nil {
		return err
	}
	e.notify(templateID)
	return nil
}

// ── section reorder gesture ─────────────────────────────────────────────

// BeginDrag marks the start of a section drag. Purely informational; no
// state beyond the phase changes until Drop.
func (e *Engine) BeginDrag(ctx context.Context, templateID string) error {
	st, err := e.stateFor(ctx, templateID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	st.phase = PhaseDragging
	e.mu.Unlock()
	return nil
}

// CancelDrag abandons a drag without changing the order.
func (e *Engine) CancelDrag(templateID string) {
	e.mu.Lock()
	if st, ok := e.templates[templateID]; ok && st.phase == PhaseDragging {
		st.phase = PhaseIdle
	}
	e.mu.Unlock()
}

// Drop completes a drag: the new order is computed and displayed
// immediately (optimistic), then persisted. On failure the order reverts
// to the last confirmed one. Only the latest issued request per template
// may apply its outcome; earlier in-flight requests are discarded when
// they resolve, so a slow response can never overwrite a newer gesture.
func (e *Engine) Drop(ctx context.Context, templateID, draggedID string, targetIndex int) error {
	st, err := e.stateFor(ctx, templateID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	if !slices.Contains(st.order, draggedID) {
		st.phase = PhaseIdle
		e.mu.Unlock()
		return fmt.Errorf("section %s not in template order: %w", draggedID, domain.ErrValidation)
	}
	newOrder := MoveID(st.order, draggedID, targetIndex)
	if slices.Equal(newOrder, st.order) {
		// Dropped back onto its own slot; nothing to persist.
		st.phase = PhaseIdle
		e.mu.Unlock()
		return nil
	}
	st.order = newOrder
	st.phase = PhaseOptimisticallyReordered
	st.seq++
	seq := st.seq
	orderCopy := slices.Clone(newOrder)
	e.mu.Unlock()
	e.notify(templateID)

	e.mu.Lock()
	if st.seq == seq {
		st.phase = PhaseReconciling
	}
	e.mu.Unlock()

	reorderErr := e.sections.Reorder(ctx, templateID, orderCopy)

	e.mu.Lock()
	if st.seq != seq {
		// A newer drop superseded this request; its outcome wins.
		e.mu.Unlock()
		return nil
	}
	if reorderErr != nil {
		st.order = slices.Clone(st.confirmed)
		st.phase = PhaseRolledBack
		e.mu.Unlock()
		e.notify(templateID)
		return fmt.Errorf("persisting section order: %w", reorderErr)
	}
	st.confirmed = orderCopy
	st.phase = PhaseConfirmed
	e.mu.Unlock()
	e.notify(templateID)
	return nil
}

func findTask(tasks []*domain.TaskNode, id string) *domain.TaskNode {
	for _, t := range tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}
