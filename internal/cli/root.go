package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gestipresence/presence-backend-go/internal/app"
	"github.com/gestipresence/presence-backend-go/internal/config"
	"github.com/spf13/cobra"
)

// LoadFunc produces the configuration commands build the application from.
type LoadFunc func() (*config.Config, error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	load    LoadFunc
}

// NewRootCommand creates presencectl with configuration read from the
// environment and .env.
func NewRootCommand() *cobra.Command {
	return newRootCommand(config.Load)
}

func newRootCommand(load LoadFunc) *cobra.Command {
	opts := &RootOptions{load: load}

	cmd := &cobra.Command{
		Use:   "presencectl",
		Short: "Facility presence service",
		Long: `presencectl runs the presence API and performs one-off administration
tasks against the configured store: rendering badges, exporting datasets
and applying approved absences to employee statuses.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewBadgeCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewAbsencesCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

// buildApp loads the configuration and wires the application. The caller
// must Close it.
func (o *RootOptions) buildApp(ctx context.Context) (*app.App, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return app.Build(ctx, cfg)
}
