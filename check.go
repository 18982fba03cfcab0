package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/gallery"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the embedded portfolio content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := content.Default()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "profile: %s (%s)\n", data.Profile.Name, data.Profile.Role)
			for _, c := range gallery.Skills(data.Skills) {
				fmt.Fprintf(out, "skill   %-20s %3d%%  delay %s\n", c.Name, c.Level, c.Block.StartDelay())
			}
			for _, c := range gallery.Projects(data.Projects) {
				fmt.Fprintf(out, "project %-20s %d tags  delay %s\n", c.Title, len(c.Tags), c.Block.StartDelay())
			}
			fmt.Fprintln(out, "content ok")
			return nil
		},
	}
}
