package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fanchart/pkg/chart"
	"github.com/matzehuels/fanchart/pkg/errors"
	chartio "github.com/matzehuels/fanchart/pkg/io"
)

// initCommand creates the init command, which writes the starter chart.
func (c *CLI) initCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a starter chart (TOML or JSON by extension)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultChartFile
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
			}
			if err := chartio.Export(path, chart.Default()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSuccess(out, "Wrote starter chart")
			printFile(out, path)
			printNextStep(out, "Render it", appName+" render "+path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
