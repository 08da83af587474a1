package cli

import (
	"context"
	"fmt"

	"github.com/mhalvorsen/treeline/internal/cli/formatter"
	"github.com/mhalvorsen/treeline/internal/domain"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage project templates",
	}

	cmd.AddCommand(
		newTemplateAddCmd(app),
		newTemplateListCmd(app),
		newTemplateInspectCmd(app),
		newTemplateRenameCmd(app),
		newTemplateRemoveCmd(app),
	)

	return cmd
}

func newTemplateAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Create a new template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &domain.Template{Name: args[0]}
			if err := app.Templates.Create(context.Background(), t); err != nil {
				return err
			}
			fmt.Printf("Created template %s [%s]\n", t.Name, formatter.ShortID(t.ID))
			return nil
		},
	}
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Templates.List(context.Background())
			if err != nil {
				return err
			}
			if len(templates) == 0 {
				fmt.Println("No templates found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatTemplateList(templates))
			return nil
		},
	}
}

func newTemplateInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect TEMPLATE",
		Short: "Show a template with its full outline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Templates.GetByID(ctx, templateID)
			if err != nil {
				return err
			}
			groups, err := app.Outline.SectionForests(ctx, templateID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatTemplateInspect(t, groups))
			return nil
		},
	}
}

func newTemplateRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename TEMPLATE NAME",
		Short: "Rename a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Templates.Rename(ctx, templateID, args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Renamed template to %s\n", t.Name)
			return nil
		},
	}
}

func newTemplateRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove TEMPLATE",
		Short: "Delete a template and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Templates.GetByID(ctx, templateID)
			if err != nil {
				return err
			}
			if !force {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete %q without --force", t.Name)
				}
				ok, err := confirmForm(fmt.Sprintf("Delete template %q and all its sections and tasks?", t.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Cancelled.")
					return nil
				}
			}
			if err := app.Templates.Delete(ctx, templateID); err != nil {
				return err
			}
			fmt.Printf("Deleted template %s\n", t.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}
