package cmd

import (
	"fyne.io/fyne/v2/app"
	"github.com/philipparndt/goruler/internal/viewer"
	"github.com/spf13/cobra"
)

const appID = "io.github.philipparndt.goruler"

var viewCmd = &cobra.Command{
	Use:   "view [image]",
	Short: "Measure distances on an image file",
	Long: `Open an image (PNG, JPEG, GIF, BMP, TIFF or WebP) in a window and measure
on it with the same gestures and keys as the ruler window. Without an
argument a file dialog is offered.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogging(cfg)

	ctx, cancel := signalContext()
	defer cancel()

	v := viewer.New(app.NewWithID(appID), cfg, viewer.Options{
		Out:    cmd.OutOrStdout(),
		Logger: logger,
	})
	if len(args) == 1 {
		if err := v.Open(args[0]); err != nil {
			return err
		}
	}
	return v.Run(ctx)
}
