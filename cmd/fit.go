package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/diagram-zoom/internal/fit"
	"github.com/ziadkadry99/diagram-zoom/internal/geom"
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Compute the fit of a diagram into a container",
	Long: `Prints the scale and anchor the controller would apply to a diagram with the
given bounding box in a container of the given size, using the configured
margin and minimum scale.`,
	Example: `  diagramzoom fit --container 800x600 --bbox 400x100
  diagramzoom fit --container 800x600 --bbox 10,20,400x100`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cs, _ := cmd.Flags().GetString("container")
		bs, _ := cmd.Flags().GetString("bbox")
		container, err := parseSize(cs)
		if err != nil {
			return fmt.Errorf("--container: %w", err)
		}
		bbox, err := parseBox(bs)
		if err != nil {
			return fmt.Errorf("--bbox: %w", err)
		}

		res := fit.Compute(container, bbox, cfg.ZoomOptions().Fit)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "mode:   %s\n", res.Mode)
		if res.Mode == fit.Formula {
			fmt.Fprintf(out, "scale:  %.4f\n", res.Scale)
			fmt.Fprintf(out, "anchor: %g,%g\n", res.Anchor.X, res.Anchor.Y)
		}
		return nil
	},
}

func init() {
	fitCmd.Flags().String("container", "", "container size, WxH")
	fitCmd.Flags().String("bbox", "", "diagram bounding box, [X,Y,]WxH")
	_ = fitCmd.MarkFlagRequired("container")
	_ = fitCmd.MarkFlagRequired("bbox")
	rootCmd.AddCommand(fitCmd)
}

// parseSize parses "WxH".
func parseSize(s string) (geom.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return geom.Size{}, fmt.Errorf("%q is not WxH", s)
	}
	width, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return geom.Size{}, fmt.Errorf("width: %w", err)
	}
	height, err := strconv.ParseFloat(h, 64)
	if err != nil {
		return geom.Size{}, fmt.Errorf("height: %w", err)
	}
	return geom.Size{Width: width, Height: height}, nil
}

// parseBox parses "WxH" or "X,Y,WxH".
func parseBox(s string) (geom.Box, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	var box geom.Box
	switch len(parts) {
	case 1:
	case 3:
		var err error
		if box.X, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
			return geom.Box{}, fmt.Errorf("x: %w", err)
		}
		if box.Y, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
			return geom.Box{}, fmt.Errorf("y: %w", err)
		}
	default:
		return geom.Box{}, fmt.Errorf("%q is not [X,Y,]WxH", s)
	}
	size, err := parseSize(parts[len(parts)-1])
	if err != nil {
		return geom.Box{}, err
	}
	box.Width, box.Height = size.Width, size.Height
	return box, nil
}
