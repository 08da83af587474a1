package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/mhalvorsen/treeline/internal/domain"
	"github.com/mhalvorsen/treeline/internal/outline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outlineFixture() []outline.SectionTree {
	parent := &domain.TaskNode{ID: "t1", SectionID: "s1", Title: "Intro call"}
	child := &domain.TaskNode{ID: "t2", SectionID: "s1", ParentID: &parent.ID, Title: "Send agenda"}
	sibling := &domain.TaskNode{ID: "t3", SectionID: "s1", Title: "Collect assets"}
	forest := outline.BuildForest([]*domain.TaskNode{parent, child, sibling})

	return []outline.SectionTree{
		{Section: &domain.Section{ID: "s1", Title: "Kickoff"}, Roots: forest},
		{Section: &domain.Section{ID: "s2", Title: "Build"}},
	}
}

func TestFormatOutline_RendersSectionsAndConnectors(t *testing.T) {
	out := FormatOutline(outlineFixture(), nil)

	assert.Contains(t, out, "▾ Kickoff")
	assert.Contains(t, out, "▾ Build")
	assert.Contains(t, out, "no tasks")

	lines := strings.Split(out, "\n")
	var intro, agenda, assets string
	for _, l := range lines {
		switch {
		case strings.Contains(l, "Intro call"):
			intro = l
		case strings.Contains(l, "Send agenda"):
			agenda = l
		case strings.Contains(l, "Collect assets"):
			assets = l
		}
	}
	require.NotEmpty(t, intro)
	assert.Contains(t, intro, treeBranch, "first root uses a branch connector")
	assert.Contains(t, agenda, treeCorner, "only child is a corner")
	assert.Contains(t, assets, treeCorner, "last root is a corner")
}

func TestFormatOutline_CollapsedSectionShowsCount(t *testing.T) {
	out := FormatOutline(outlineFixture(), func(sectionID string) bool {
		return sectionID != "s1"
	})

	assert.Contains(t, out, "▸ Kickoff")
	assert.Contains(t, out, "(3 tasks)")
	assert.NotContains(t, out, "Intro call")
	assert.Contains(t, out, "▾ Build")
}

func TestFormatOutline_Badges(t *testing.T) {
	due := time.Now().AddDate(0, 0, 30)
	assignee := domain.AssigneeSelf
	task := &domain.TaskNode{
		ID:            "t1",
		Title:         "Design layout",
		AssignedTo:    &assignee,
		DueDate:       &due,
		EstimatedDays: 5,
	}
	groups := []outline.SectionTree{{
		Section: &domain.Section{ID: "s1", Title: "Build"},
		Roots:   outline.BuildForest([]*domain.TaskNode{task}),
	}}

	out := FormatOutline(groups, nil)
	assert.Contains(t, out, "@me")
	assert.Contains(t, out, "due "+due.Format("Jan 2"))
	assert.Contains(t, out, "5d")
}

func TestFormatOutline_UnfiledGroup(t *testing.T) {
	stray := &domain.TaskNode{ID: "t9", SectionID: "missing", Title: "Lost task"}
	groups := []outline.SectionTree{
		{Roots: outline.BuildForest([]*domain.TaskNode{stray})},
	}

	out := FormatOutline(groups, nil)
	assert.Contains(t, out, "(unfiled tasks)")
	assert.Contains(t, out, "Lost task")
}
