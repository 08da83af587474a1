package cli

import (
	"github.com/mhalvorsen/treeline/internal/outline"
	"github.com/mhalvorsen/treeline/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to the services and the outline engine used by
// CLI commands.
type App struct {
	Templates service.TemplateService
	Sections  service.SectionService
	Tasks     service.TaskService
	Import    service.ImportService
	Outline   *outline.Engine

	// IsInteractive reports whether stdin is a terminal; interactive-only
	// features (forms, the outline TUI) are gated on it.
	IsInteractive func() bool
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}

// NewRootCmd creates the top-level "treeline" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "treeline",
		Short: "Project template outlines: sections, nested tasks, reordering",
	}

	root.AddCommand(
		newTemplateCmd(app),
		newSectionCmd(app),
		newTaskCmd(app),
		newOutlineCmd(app),
		newImportCmd(app),
	)

	return root
}
