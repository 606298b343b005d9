package main

import (
	"fmt"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"
)

func newRenderCmd(g *globalFlags) *cobra.Command {
	f := &reelFlags{}
	var output string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one algorithm to a video",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				output = f.defaultOutput(".", f.algorithm)
			}
			var bar *pb.ProgressBar
			if !g.quiet {
				bar = barTemplate.Start64(0).Set("prefix", f.algorithm)
			}
			stats, err := f.reel(cmd.Context(), f.algorithm, output, bar)
			if bar != nil {
				bar.Finish()
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d frames, %s\n", output, stats.Frames, stats.Counters)
			return nil
		},
	}
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "merge", "algorithm key (see list)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or PNG directory (default <algorithm>-<dataset>.mp4)")
	f.addMachineFlags(cmd.Flags())
	f.addVideoFlags(cmd.Flags())
	return cmd
}
