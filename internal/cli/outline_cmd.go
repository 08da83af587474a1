package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mhalvorsen/treeline/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newOutlineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outline",
		Short: "View and edit a template outline",
	}

	cmd.AddCommand(
		newOutlineShowCmd(app),
		newOutlineTUICmd(app),
	)

	return cmd
}

func newOutlineShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show TEMPLATE",
		Short: "Print a template's outline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, args[0])
			if err != nil {
				return err
			}
			groups, err := app.Outline.SectionForests(ctx, templateID)
			if err != nil {
				return err
			}
			if len(groups) == 0 {
				fmt.Println("No sections in this template.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatOutline(groups, nil))
			return nil
		},
	}
}

func newOutlineTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui TEMPLATE",
		Short: "Browse and edit the outline interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("the outline TUI needs an interactive terminal")
			}
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, args[0])
			if err != nil {
				return err
			}
			model := newOutlineView(app, templateID)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
}
