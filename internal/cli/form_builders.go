package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mhalvorsen/treeline/internal/cli/formatter"
)

// treelineHuhTheme returns a custom huh theme using the Gruvbox palette.
func treelineHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// confirmForm runs a yes/no confirmation and returns the answer.
func confirmForm(title string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(treelineHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

type taskFormInput struct {
	title       string
	section     string
	description string
	assignee    string
	due         *time.Time
	days        int
}

// runTaskForm collects new-task fields interactively. The section select
// is skipped when the caller already fixed a section.
func runTaskForm(ctx context.Context, app *App, templateID string, seed taskFormInput) (taskFormInput, error) {
	out := seed

	var groups []*huh.Group

	if out.section == "" {
		sections, err := app.Sections.ListByTemplate(ctx, templateID)
		if err != nil {
			return out, err
		}
		if len(sections) == 0 {
			return out, fmt.Errorf("template has no sections; add one first")
		}
		options := make([]huh.Option[string], 0, len(sections))
		for _, s := range sections {
			options = append(options, huh.NewOption(s.Title, s.ID))
		}
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which Section?").
				Options(options...).
				Value(&out.section),
		))
	}

	var dueStr, daysStr string
	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Task Title").
			Value(&out.title).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("title is required")
				}
				return nil
			}),
		huh.NewInput().
			Title("Description (optional)").
			Value(&out.description),
		huh.NewInput().
			Title("Assignee (blank for none)").
			Placeholder("self").
			Value(&out.assignee),
		huh.NewInput().
			Title("Due Date (YYYY-MM-DD, blank for none)").
			Placeholder("2026-09-30").
			Value(&dueStr).
			Validate(validateOptionalDate),
		huh.NewInput().
			Title("Estimated Days (blank for none)").
			Placeholder("3").
			Value(&daysStr).
			Validate(validatePositiveInt),
	))

	form := huh.NewForm(groups...).WithTheme(treelineHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return out, err
	}

	if dueStr != "" {
		d, err := time.Parse("2006-01-02", dueStr)
		if err != nil {
			return out, fmt.Errorf("invalid due date %q: %w", dueStr, err)
		}
		out.due = &d
	}
	if daysStr != "" {
		out.days, _ = strconv.Atoi(daysStr)
	}

	return out, nil
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validatePositiveInt accepts empty or a positive integer.
func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}
