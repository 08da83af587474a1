package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveTemplateID turns user input (name, full UUID, or UUID prefix)
// into a template id.
func resolveTemplateID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("template is required")
	}

	templates, err := app.Templates.List(ctx)
	if err != nil {
		return "", err
	}

	// 1. Exact name match (case-insensitive)
	for _, t := range templates {
		if strings.EqualFold(t.Name, input) {
			return t.ID, nil
		}
	}

	// 2. Exact UUID match
	for _, t := range templates {
		if t.ID == input {
			return t.ID, nil
		}
	}

	// 3. UUID prefix match
	var matches []string
	for _, t := range templates {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("template not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("template %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveSectionID matches a section within a template by title, UUID,
// or UUID prefix.
func resolveSectionID(ctx context.Context, app *App, templateID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("section is required")
	}

	sections, err := app.Sections.ListByTemplate(ctx, templateID)
	if err != nil {
		return "", err
	}

	for _, s := range sections {
		if strings.EqualFold(s.Title, input) || s.ID == input {
			return s.ID, nil
		}
	}

	var matches []string
	for _, s := range sections {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("section not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("section %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTaskID matches a task within a template by title, UUID, or
// UUID prefix.
func resolveTaskID(ctx context.Context, app *App, templateID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("task is required")
	}

	tasks, err := app.Tasks.ListByTemplate(ctx, templateID)
	if err != nil {
		return "", err
	}

	for _, t := range tasks {
		if t.ID == input {
			return t.ID, nil
		}
	}

	var titleMatches, prefixMatches []string
	for _, t := range tasks {
		if strings.EqualFold(t.Title, input) {
			titleMatches = append(titleMatches, t.ID)
		}
		if strings.HasPrefix(t.ID, input) {
			prefixMatches = append(prefixMatches, t.ID)
		}
	}
	if len(titleMatches) == 1 {
		return titleMatches[0], nil
	}
	if len(titleMatches) > 1 {
		return "", fmt.Errorf("task title %q is ambiguous (%d matches)", input, len(titleMatches))
	}

	switch len(prefixMatches) {
	case 0:
		return "", fmt.Errorf("task not found: %q", input)
	case 1:
		return prefixMatches[0], nil
	default:
		return "", fmt.Errorf("task %q is ambiguous (%d matches)", input, len(prefixMatches))
	}
}
