package cli

import (
	"fmt"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/pkg/validator"
	"github.com/spf13/cobra"
)

// NewAbsencesCommand creates the absences command group.
func NewAbsencesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "absences",
		Short: "Absence ledger maintenance",
	}
	cmd.AddCommand(newAbsencesApplyCommand(rootOpts))
	return cmd
}

func newAbsencesApplyCommand(rootOpts *RootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply approved absences covering a day to employee statuses",
		Long: `Apply every approved absence whose range covers the given day, today by
default, to the status of its employee. This is the job the scheduler runs
shortly after midnight.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rootOpts.buildApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			day := time.Now().In(a.Config.Location())
			if date != "" {
				parsed, ok := validator.IsValidDate(date)
				if !ok {
					return fmt.Errorf("invalid --date %q: expected DD/MM/YYYY", date)
				}
				day = parsed
			}

			updated, err := a.Absences.ApplyActiveAbsences(cmd.Context(), day)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d employee status(es) updated for %s\n", updated, validator.FormatDate(day))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to apply (DD/MM/YYYY), today when empty")
	return cmd
}
