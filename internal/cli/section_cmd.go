package cli

import (
	"context"
	"fmt"

	"github.com/mhalvorsen/treeline/internal/cli/formatter"
	"github.com/mhalvorsen/treeline/internal/domain"
	"github.com/spf13/cobra"
)

func newSectionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "section",
		Short: "Manage template sections",
	}

	cmd.AddCommand(
		newSectionAddCmd(app),
		newSectionListCmd(app),
		newSectionRenameCmd(app),
		newSectionMoveCmd(app),
		newSectionRemoveCmd(app),
	)

	return cmd
}

func newSectionAddCmd(app *App) *cobra.Command {
	var templateArg string

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a section to a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, templateArg)
			if err != nil {
				return err
			}
			s := &domain.Section{TemplateID: templateID, Title: args[0]}
			if err := app.Sections.Create(ctx, s); err != nil {
				return err
			}
			fmt.Printf("Added section %s at position %d\n", s.Title, s.OrderIndex+1)
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateArg, "template", "t", "", "Template name or ID")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

func newSectionListCmd(app *App) *cobra.Command {
	var templateArg string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a template's sections in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, templateArg)
			if err != nil {
				return err
			}
			sections, err := app.Sections.ListByTemplate(ctx, templateID)
			if err != nil {
				return err
			}
			if len(sections) == 0 {
				fmt.Println("No sections in this template.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatSectionList(sections))
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateArg, "template", "t", "", "Template name or ID")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

func newSectionRenameCmd(app *App) *cobra.Command {
	var templateArg string

	cmd := &cobra.Command{
		Use:   "rename SECTION TITLE",
		Short: "Rename a section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, templateArg)
			if err != nil {
				return err
			}
			sectionID, err := resolveSectionID(ctx, app, templateID, args[0])
			if err != nil {
				return err
			}
			s, err := app.Sections.GetByID(ctx, sectionID)
			if err != nil {
				return err
			}
			s.Title = args[1]
			if err := app.Sections.Update(ctx, s); err != nil {
				return err
			}
			fmt.Printf("Renamed section to %s\n", s.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateArg, "template", "t", "", "Template name or ID")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

// newSectionMoveCmd is the CLI face of the drag-and-drop gesture: the
// section is pulled out of the order and reinserted at the target
// position, with the whole permutation persisted atomically.
func newSectionMoveCmd(app *App) *cobra.Command {
	var templateArg string

	cmd := &cobra.Command{
		Use:   "move SECTION POSITION",
		Short: "Move a section to a new position (1-based)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, templateArg)
			if err != nil {
				return err
			}
			sectionID, err := resolveSectionID(ctx, app, templateID, args[0])
			if err != nil {
				return err
			}
			var position int
			if _, err := fmt.Sscanf(args[1], "%d", &position); err != nil || position < 1 {
				return fmt.Errorf("position must be a positive number, got %q", args[1])
			}

			if err := app.Outline.Drop(ctx, templateID, sectionID, position-1); err != nil {
				return err
			}

			sections, err := app.Sections.ListByTemplate(ctx, templateID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatSectionList(sections))
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateArg, "template", "t", "", "Template name or ID")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

func newSectionRemoveCmd(app *App) *cobra.Command {
	var templateArg string
	var force bool

	cmd := &cobra.Command{
		Use:   "remove SECTION",
		Short: "Delete a section and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, templateArg)
			if err != nil {
				return err
			}
			sectionID, err := resolveSectionID(ctx, app, templateID, args[0])
			if err != nil {
				return err
			}
			s, err := app.Sections.GetByID(ctx, sectionID)
			if err != nil {
				return err
			}
			if !force {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete %q without --force", s.Title)
				}
				ok, err := confirmForm(fmt.Sprintf("Delete section %q and all its tasks?", s.Title))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Cancelled.")
					return nil
				}
			}
			if err := app.Sections.Delete(ctx, sectionID); err != nil {
				return err
			}
			fmt.Printf("Deleted section %s\n", s.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateArg, "template", "t", "", "Template name or ID")
	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}
