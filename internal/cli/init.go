package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SheetLink/internal/importer"
	"github.com/piwi3910/SheetLink/internal/model"
	"github.com/piwi3910/SheetLink/internal/project"
)

func (c *CLI) initCommand() *cobra.Command {
	var (
		from string
		name string
	)

	cmd := &cobra.Command{
		Use:   "init <sheetset.json>",
		Short: "Create a sheet set from a CSV or Excel sheet list",
		Long: `Init reads an ordered sheet list (columns: name, file, model) and writes
a sheet set manifest. Row order becomes sheet order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := printer{w: cmd.OutOrStdout()}

			result := importer.ImportFile(from)
			for _, w := range result.Warnings {
				out.warning("%s", w)
			}
			if len(result.Errors) > 0 {
				for _, e := range result.Errors {
					out.failure("%s", e)
				}
				return fmt.Errorf("sheet list %s has %d errors", from, len(result.Errors))
			}

			if name == "" {
				base := filepath.Base(args[0])
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}
			set := model.NewSheetSet(name, result.Sheets)
			if err := set.Validate(); err != nil {
				return err
			}
			if err := project.SaveSheetSet(args[0], set); err != nil {
				return err
			}

			out.success("Sheet set %q with %d sheets", set.Name, len(set.Sheets))
			out.file(args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "CSV or Excel sheet list to import")
	cmd.Flags().StringVar(&name, "name", "", "sheet set name (default: output file name)")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}
