package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mhalvorsen/treeline/internal/cli/formatter"
	"github.com/mhalvorsen/treeline/internal/outline"
)

// outlineRow is a flattened row of the outline: either a section header
// or a task at some depth below it.
type outlineRow struct {
	isSection bool
	sectionID string
	taskID    string
	title     string
	depth     int
	children  int // direct task count, section rows only
}

// outlineLoadedMsg signals that outline data has been (re)loaded.
type outlineLoadedMsg struct {
	groups []outline.SectionTree
	phase  outline.GesturePhase
	err    error
}

type outlineKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	MoveUp  key.Binding
	MoveDn  key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var outlineKeys = outlineKeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open/collapse")),
	MoveUp:  key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move section up")),
	MoveDn:  key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move section down")),
	Delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete task")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// outlineView is the interactive outline browser. Section moves go
// through the engine's drop gesture, so the display updates optimistically
// and rolls back if persistence fails.
type outlineView struct {
	app        *App
	templateID string

	groups []outline.SectionTree
	phase  outline.GesturePhase
	view   *outline.ViewState
	cursor int
	status string
	err    error
}

func newOutlineView(app *App, templateID string) *outlineView {
	return &outlineView{
		app:        app,
		templateID: templateID,
		view:       outline.NewViewState(),
	}
}

func (v *outlineView) Init() tea.Cmd {
	return v.load()
}

func (v *outlineView) load() tea.Cmd {
	app, templateID := v.app, v.templateID
	return func() tea.Msg {
		ctx := context.Background()
		groups, err := app.Outline.SectionForests(ctx, templateID)
		return outlineLoadedMsg{
			groups: groups,
			phase:  app.Outline.Phase(templateID),
			err:    err,
		}
	}
}

func (v *outlineView) rows() []outlineRow {
	var rows []outlineRow
	for _, group := range v.groups {
		sectionID := ""
		title := "(unfiled tasks)"
		if group.Section != nil {
			sectionID = group.Section.ID
			title = group.Section.Title
		}
		rows = append(rows, outlineRow{
			isSection: true,
			sectionID: sectionID,
			title:     title,
			children:  outline.CountNodes(group.Roots),
		})
		if sectionID != "" && !v.view.IsExpanded(sectionID) {
			continue
		}
		outline.Walk(group.Roots, func(n *outline.Node, depth int) {
			rows = append(rows, outlineRow{
				sectionID: sectionID,
				taskID:    n.Task.ID,
				title:     n.Task.Title,
				depth:     depth,
			})
		})
	}
	return rows
}

func (v *outlineView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case outlineLoadedMsg:
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.groups = msg.groups
		v.phase = msg.phase
		if rows := v.rows(); v.cursor >= len(rows) && len(rows) > 0 {
			v.cursor = len(rows) - 1
		}
		return v, nil

	case tea.KeyMsg:
		rows := v.rows()
		switch {
		case key.Matches(msg, outlineKeys.Quit):
			return v, tea.Quit
		case key.Matches(msg, outlineKeys.Up):
			if v.cursor > 0 {
				v.cursor--
			}
		case key.Matches(msg, outlineKeys.Down):
			if v.cursor < len(rows)-1 {
				v.cursor++
			}
		case key.Matches(msg, outlineKeys.Toggle):
			if v.cursor < len(rows) {
				row := rows[v.cursor]
				if row.isSection && row.sectionID != "" {
					v.view.Toggle(row.sectionID)
				}
			}
		case key.Matches(msg, outlineKeys.MoveUp):
			return v.moveSection(rows, -1)
		case key.Matches(msg, outlineKeys.MoveDn):
			return v.moveSection(rows, +1)
		case key.Matches(msg, outlineKeys.Delete):
			if v.cursor < len(rows) {
				row := rows[v.cursor]
				if !row.isSection && row.taskID != "" {
					return v, v.deleteTask(row)
				}
			}
		case key.Matches(msg, outlineKeys.Refresh):
			v.status = ""
			return v, v.load()
		}
	}
	return v, nil
}

// moveSection shifts the section under the cursor one slot up or down.
func (v *outlineView) moveSection(rows []outlineRow, delta int) (tea.Model, tea.Cmd) {
	if v.cursor >= len(rows) {
		return v, nil
	}
	row := rows[v.cursor]
	if !row.isSection || row.sectionID == "" {
		return v, nil
	}

	app, templateID, sectionID := v.app, v.templateID, row.sectionID
	return v, func() tea.Msg {
		ctx := context.Background()
		order, err := app.Outline.SectionOrder(ctx, templateID)
		if err != nil {
			return outlineLoadedMsg{err: err}
		}
		idx := -1
		for i, id := range order {
			if id == sectionID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return outlineLoadedMsg{err: fmt.Errorf("section no longer in outline")}
		}
		if err := app.Outline.Drop(ctx, templateID, sectionID, idx+delta); err != nil {
			// The engine already rolled the order back; surface the error
			// alongside the reverted outline.
			groups, loadErr := app.Outline.SectionForests(ctx, templateID)
			if loadErr != nil {
				return outlineLoadedMsg{err: loadErr}
			}
			return outlineLoadedMsg{groups: groups, phase: app.Outline.Phase(templateID), err: err}
		}
		groups, err := app.Outline.SectionForests(ctx, templateID)
		return outlineLoadedMsg{groups: groups, phase: app.Outline.Phase(templateID), err: err}
	}
}

func (v *outlineView) deleteTask(row outlineRow) tea.Cmd {
	app, templateID := v.app, v.templateID
	return func() tea.Msg {
		ctx := context.Background()
		if err := app.Outline.DeleteTask(ctx, templateID, row.taskID); err != nil {
			return outlineLoadedMsg{err: err}
		}
		groups, err := app.Outline.SectionForests(ctx, templateID)
		return outlineLoadedMsg{groups: groups, phase: app.Outline.Phase(templateID), err: err}
	}
}

func (v *outlineView) View() string {
	var b strings.Builder

	if v.err != nil {
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n\n")
	}

	rows := v.rows()
	if len(rows) == 0 {
		b.WriteString("  " + formatter.Dim("No sections in this template.") + "\n")
	}
	for i, row := range rows {
		line := v.renderRow(row)
		if i == v.cursor {
			line = formatter.StyleHeader.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + v.footer())
	return b.String()
}

func (v *outlineView) renderRow(row outlineRow) string {
	if row.isSection {
		marker := "▾"
		if row.sectionID != "" && !v.view.IsExpanded(row.sectionID) {
			marker = "▸"
		}
		header := formatter.StyleHeader.Render(marker + " " + row.title)
		return header + " " + formatter.Dim(fmt.Sprintf("(%d)", row.children))
	}
	return strings.Repeat("  ", row.depth+1) + formatter.StyleFg.Render(row.title)
}

func (v *outlineView) footer() string {
	var parts []string
	if v.phase == outline.PhaseReconciling || v.phase == outline.PhaseOptimisticallyReordered {
		parts = append(parts, formatter.StyleYellow.Render("saving order…"))
	}
	if v.phase == outline.PhaseRolledBack {
		parts = append(parts, formatter.StyleRed.Render("reorder failed, order reverted"))
	}
	help := []string{}
	for _, bind := range []key.Binding{
		outlineKeys.Toggle, outlineKeys.MoveUp, outlineKeys.MoveDn,
		outlineKeys.Delete, outlineKeys.Refresh, outlineKeys.Quit,
	} {
		help = append(help, bind.Help().Key+" "+bind.Help().Desc)
	}
	parts = append(parts, formatter.Dim(strings.Join(help, " · ")))
	return "  " + strings.Join(parts, "  ")
}
