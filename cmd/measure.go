package cmd

import (
	"fmt"
	"math"

	"github.com/philipparndt/goruler/internal/measurement"
	"github.com/philipparndt/goruler/internal/prompt"
	"github.com/philipparndt/goruler/internal/raster"
	"github.com/philipparndt/goruler/internal/scene"
	"github.com/philipparndt/goruler/pkg/geometry"
	"github.com/spf13/cobra"
)

const pngMargin = 10

var (
	point1X, point1Y float64
	point2X, point2Y float64
	lockAxis         bool
	scalePixels      float64
	scaleValue       string
	pngPath          string
)

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Measure the distance between two points without a window",
	Long: `Measure the distance between two screen points the same way a drag in
the ruler window does. A scale can be given as a reference length in pixels
and the value it stands for, e.g. --scale-px 100 --scale "50 mm".`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().Float64Var(&point1X, "x1", 0.0, "X coordinate of first point")
	measureCmd.Flags().Float64Var(&point1Y, "y1", 0.0, "Y coordinate of first point")
	measureCmd.Flags().Float64Var(&point2X, "x2", 0.0, "X coordinate of second point")
	measureCmd.Flags().Float64Var(&point2Y, "y2", 0.0, "Y coordinate of second point")
	measureCmd.Flags().BoolVar(&lockAxis, "lock", false, "lock the line to the dominant axis")
	measureCmd.Flags().Float64Var(&scalePixels, "scale-px", 0, "length of the reference line in pixels")
	measureCmd.Flags().StringVar(&scaleValue, "scale", "", "value of the reference line, e.g. \"50 mm\"")
	measureCmd.Flags().StringVar(&pngPath, "png", "", "render the measurement to this PNG file")

	measureCmd.MarkFlagsRequiredTogether("x1", "y1", "x2", "y2")
	measureCmd.MarkFlagsRequiredTogether("scale-px", "scale")
}

func runMeasure(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogging(cfg)
	out := cmd.OutOrStdout()

	sc := scene.New()
	session := measurement.NewSession(sc, prompt.NewScripted(out, scaleValue), measurement.Options{
		ShowLabels:  cfg.ShowLabels || pngPath != "",
		DefaultUnit: cfg.DefaultUnit,
		Out:         out,
		Logger:      logger,
	})

	if cmd.Flags().Changed("scale-px") {
		res := session.Calibrate(cmd.Context(), scalePixels)
		if res.Outcome == measurement.CalibrationAborted {
			return fmt.Errorf("invalid scale %q: %w", scaleValue, res.Err)
		}
	}

	session.OnPress(geometry.NewPoint(point1X, point1Y))
	report, err := session.OnRelease(cmd.Context(), geometry.NewPoint(point2X, point2Y), lockAxis)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, report.String())

	if pngPath == "" {
		return nil
	}

	items, _ := sc.Snapshot()
	width := int(math.Max(math.Max(report.Start.X, report.End.X)+pngMargin, float64(cfg.Width)))
	height := int(math.Max(math.Max(report.Start.Y, report.End.Y)+pngMargin, float64(cfg.Height)))
	if err := raster.WritePNG(pngPath, raster.Render(items, width, height, raster.DefaultStyle())); err != nil {
		return err
	}
	logger.Info("measurement rendered", "path", pngPath, "width", width, "height", height)
	return nil
}
