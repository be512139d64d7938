package cli

import (
	"fmt"
	"os"

	"github.com/gestipresence/presence-backend-go/internal/domain/report"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	format string
	date   string
	out    string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:       "export <dataset>",
		Short:     "Export attendance, employees, clients or absences",
		Long:      "Export a dataset as csv, json or xlsx. Without --out the document is written to stdout.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: report.Datasets,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rootOpts.buildApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			export, err := a.Reports.Export(cmd.Context(), report.ExportRequest{
				Dataset: args[0],
				Format:  opts.format,
				Date:    opts.date,
			})
			if err != nil {
				return err
			}

			if opts.out == "" {
				_, err := cmd.OutOrStdout().Write(export.Body)
				return err
			}
			if err := os.WriteFile(opts.out, export.Body, 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", opts.out, len(export.Body))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", string(report.FormatCSV), "output format (csv|json|xlsx)")
	cmd.Flags().StringVar(&opts.date, "date", "", "restrict attendance to one day (DD/MM/YYYY)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file")
	return cmd
}
