package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mhalvorsen/treeline/internal/domain"
	"github.com/mhalvorsen/treeline/internal/outline"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// FormatOutline renders a template's sections and task trees. Collapsed
// sections (per expanded) show only their header with a child count;
// a nil expanded func means everything is open.
func FormatOutline(groups []outline.SectionTree, expanded func(sectionID string) bool) string {
	var b strings.Builder
	for i, group := range groups {
		if i > 0 {
			b.WriteString("\n")
		}

		title := "(unfiled tasks)"
		open := true
		if group.Section != nil {
			title = group.Section.Title
			if expanded != nil {
				open = expanded(group.Section.ID)
			}
		}

		if !open {
			count := outline.CountNodes(group.Roots)
			b.WriteString(fmt.Sprintf("%s %s\n",
				StyleHeader.Render("▸ "+title),
				Dim(fmt.Sprintf("(%d tasks)", count))))
			continue
		}

		b.WriteString(StyleHeader.Render("▾ "+title) + "\n")
		if len(group.Roots) == 0 {
			b.WriteString("  " + Dim("no tasks") + "\n")
			continue
		}
		b.WriteString(renderTaskForest(group.Roots))
	}
	return b.String()
}

// renderTaskForest renders task trees using box-drawing connectors, with
// assignee and due-date badges right-aligned.
func renderTaskForest(roots []*outline.Node) string {
	type line struct {
		content string
		badge   string
	}

	var lines []line
	maxWidth := 0

	var walk func(n *outline.Node, prefix string, isLast bool)
	walk = func(n *outline.Node, prefix string, isLast bool) {
		connector := treeBranch
		childPrefix := prefix + treePipe
		if isLast {
			connector = treeCorner
			childPrefix = prefix + "   "
		}

		content := prefix + connector + StyleFg.Render(n.Task.Title)
		lines = append(lines, line{content: content, badge: taskBadge(n.Task)})
		if w := lipgloss.Width(content); w > maxWidth {
			maxWidth = w
		}

		for i, c := range n.Children {
			walk(c, childPrefix, i == len(n.Children)-1)
		}
	}
	for i, root := range roots {
		walk(root, "", i == len(roots)-1)
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge == "" {
			b.WriteString(li.content + "\n")
			continue
		}
		pad := maxWidth - lipgloss.Width(li.content)
		if pad < 0 {
			pad = 0
		}
		b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
	}
	return b.String()
}

func taskBadge(t *domain.TaskNode) string {
	var parts []string
	if label := t.AssigneeLabel(); label != "" {
		parts = append(parts, StylePurple.Render("@"+label))
	}
	if t.DueDate != nil {
		parts = append(parts, dueBadge(*t.DueDate))
	}
	if t.EstimatedDays > 0 {
		parts = append(parts, Dim(fmt.Sprintf("%dd", t.EstimatedDays)))
	}
	if len(parts) == 0 {
		return ""
	}
	return StyleBlue.Render("[ ") + strings.Join(parts, " ") + StyleBlue.Render(" ]")
}

func dueBadge(due time.Time) string {
	text := "due " + due.Format("Jan 2")
	days := int(time.Until(due).Hours() / 24)
	switch {
	case days < 0:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}
