package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/motion"
)

type parallaxFlags struct {
	offset   float64
	document float64
	viewport float64
	asJSON   bool
}

func newParallaxCmd() *cobra.Command {
	flags := &parallaxFlags{}

	cmd := &cobra.Command{
		Use:   "parallax",
		Short: "Print the hero layer's offset and opacity for a scroll position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			frame := motion.At(flags.offset, flags.document, flags.viewport)
			out := cmd.OutOrStdout()
			if flags.asJSON {
				return json.NewEncoder(out).Encode(frame)
			}
			fmt.Fprintf(out, "progress %g\noffset   %g%%\nopacity  %g\n", frame.Progress, frame.OffsetY, frame.Opacity)
			return nil
		},
	}

	cmd.Flags().Float64Var(&flags.offset, "offset", 0, "Current scroll offset")
	cmd.Flags().Float64Var(&flags.document, "document", 0, "Total document height")
	cmd.Flags().Float64Var(&flags.viewport, "viewport", 0, "Viewport height")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "Emit JSON")

	return cmd
}
