package cli

import (
	"fmt"
	"os"

	"github.com/gestipresence/presence-backend-go/internal/domain/badge"
	"github.com/spf13/cobra"
)

type badgeOptions struct {
	format string
	size   int
	out    string
}

// NewBadgeCommand creates the badge command.
func NewBadgeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &badgeOptions{}

	cmd := &cobra.Command{
		Use:   "badge <code>",
		Short: "Render a badge PNG for an employee or client",
		Long: `Render the badge of a directory entry as a PNG file.

qrcode badges carry the JSON payload read by client kiosks, barcode badges
carry the bare code as CODE128. Without --out the file is named after the
code and format in the current directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rootOpts.buildApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			b, err := a.Badges.Render(cmd.Context(), badge.RenderRequest{
				Code:   args[0],
				Format: opts.format,
				Size:   opts.size,
			})
			if err != nil {
				return err
			}

			out := opts.out
			if out == "" {
				out = b.Filename
			}
			if err := os.WriteFile(out, b.Image, 0o644); err != nil {
				return fmt.Errorf("failed to write badge: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s, %d bytes)\n", out, b.Format, len(b.Image))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", string(badge.FormatQRCode), "badge format (qrcode|barcode)")
	cmd.Flags().IntVar(&opts.size, "size", 0, "width in pixels (default depends on format)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file")
	return cmd
}
