package cli

import (
	"context"
	"fmt"

	"github.com/mhalvorsen/treeline/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a template from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportTemplate(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported template %s [%s]: %d sections, %d tasks\n",
				result.Template.Name,
				formatter.ShortID(result.Template.ID),
				result.SectionCount,
				result.TaskCount,
			)
			return nil
		},
	}
}
