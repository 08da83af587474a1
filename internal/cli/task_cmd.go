package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/mhalvorsen/treeline/internal/cli/formatter"
	"github.com/mhalvorsen/treeline/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks in a template outline",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskSubtaskCmd(app),
		newTaskUpdateCmd(app),
		newTaskMoveCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var templateArg, sectionArg, parentArg, description, assignee string
	var due *time.Time
	var days int

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a task to a section",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, templateArg)
			if err != nil {
				return err
			}

			var title string
			if len(args) == 1 {
				title = args[0]
			}

			// No title on an interactive terminal: collect the fields
			// through a form instead.
			if title == "" {
				if !app.interactive() {
					return fmt.Errorf("task title is required")
				}
				input, err := runTaskForm(ctx, app, templateID, taskFormInput{section: sectionArg})
				if err != nil {
					return err
				}
				title, sectionArg = input.title, input.section
				description, assignee = input.description, input.assignee
				due, days = input.due, input.days
			}

			sectionID, err := resolveSectionID(ctx, app, templateID, sectionArg)
			if err != nil {
				return err
			}
			var parentID *string
			if parentArg != "" {
				pid, err := resolveTaskID(ctx, app, templateID, parentArg)
				if err != nil {
					return err
				}
				parentID = &pid
			}

			task, err := app.Outline.CreateTask(ctx, templateID, sectionID, parentID, title, description)
			if err != nil {
				return err
			}

			if assignee != "" || due != nil || days > 0 {
				patch := domain.TaskPatch{DueDate: due}
				if assignee != "" {
					patch.AssignedTo = &assignee
				}
				if days > 0 {
					patch.EstimatedDays = &days
				}
				if task, err = app.Outline.UpdateTask(ctx, templateID, task.ID, patch); err != nil {
					return err
				}
			}

			fmt.Printf("Added task %s [%s]\n", task.Title, formatter.ShortID(task.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateArg, "template", "t", "", "Template name or ID")
	cmd.Flags().StringVarP(&sectionArg, "section", "s", "", "Section title or ID")
	cmd.Flags().StringVar(&parentArg, "parent", "", "Parent task (title or ID) for a subtask")
	cmd.Flags().StringVar(&description, "desc", "", "Task description")
	cmd.Flags().StringVar(&assignee, "assignee", "", `Assignee ("self" or a member id)`)
	cmd.Flags().Var(&dateValue{target: &due}, "due", "Due date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&days, "days", 0, "Estimated days")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

func newTaskSubtaskCmd(app *App) *cobra.Command {
	var templateArg string

	cmd := &cobra.Command{
		Use:   "subtask PARENT TITLE",
		Short: "Add a subtask under an existing task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, templateArg)
			if err != nil {
				return err
			}
			parentID, err := resolveTaskID(ctx, app, templateID, args[0])
			if err != nil {
				return err
			}
			task, err := app.Outline.AddSubtask(ctx, templateID, parentID, args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Added subtask %s [%s]\n", task.Title, formatter.ShortID(task.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateArg, "template", "t", "", "Template name or ID")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var templateArg, title, description, assignee string
	var due *time.Time
	var days int
	var clearDue, clearAssignee bool

	cmd := &cobra.Command{
		Use:   "update TASK",
		Short: "Update a task's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, templateArg)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, templateID, args[0])
			if err != nil {
				return err
			}

			var patch domain.TaskPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("desc") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("assignee") {
				patch.AssignedTo = &assignee
			}
			if cmd.Flags().Changed("due") {
				patch.DueDate = due
			}
			if cmd.Flags().Changed("days") {
				patch.EstimatedDays = &days
			}
			patch.ClearDueDate = clearDue
			patch.ClearAssignee = clearAssignee

			task, err := app.Outline.UpdateTask(ctx, templateID, taskID, patch)
			if err != nil {
				return err
			}
			fmt.Printf("Updated task %s\n", task.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateArg, "template", "t", "", "Template name or ID")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "desc", "", "New description")
	cmd.Flags().StringVar(&assignee, "assignee", "", "New assignee")
	cmd.Flags().Var(&dateValue{target: &due}, "due", "New due date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&days, "days", 0, "New estimated days")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Remove the due date")
	cmd.Flags().BoolVar(&clearAssignee, "clear-assignee", false, "Remove the assignee")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

// newTaskMoveCmd reparents a task within its section. "root" as the
// parent hoists the task to the section root.
func newTaskMoveCmd(app *App) *cobra.Command {
	var templateArg string

	cmd := &cobra.Command{
		Use:   "move TASK PARENT",
		Short: `Move a task under a new parent ("root" to hoist)`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, templateArg)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, templateID, args[0])
			if err != nil {
				return err
			}

			change := &domain.ParentChange{}
			if args[1] != "root" {
				parentID, err := resolveTaskID(ctx, app, templateID, args[1])
				if err != nil {
					return err
				}
				change.ParentID = &parentID
			}

			task, err := app.Outline.UpdateTask(ctx, templateID, taskID, domain.TaskPatch{Parent: change})
			if err != nil {
				return err
			}
			fmt.Printf("Moved task %s\n", task.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateArg, "template", "t", "", "Template name or ID")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	var templateArg string
	var force bool

	cmd := &cobra.Command{
		Use:   "remove TASK",
		Short: "Delete a task (subtasks become section roots)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, templateArg)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, templateID, args[0])
			if err != nil {
				return err
			}
			task, err := app.Tasks.GetByID(ctx, taskID)
			if err != nil {
				return err
			}
			if !force {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete %q without --force", task.Title)
				}
				ok, err := confirmForm(fmt.Sprintf("Delete task %q?", task.Title))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Cancelled.")
					return nil
				}
			}
			if err := app.Outline.DeleteTask(ctx, templateID, taskID); err != nil {
				return err
			}
			fmt.Printf("Deleted task %s\n", task.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateArg, "template", "t", "", "Template name or ID")
	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}
