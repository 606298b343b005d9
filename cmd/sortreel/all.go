package main

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/sortreel"
	"github.com/gogpu/sortreel/machine"
)

func newAllCmd(g *globalFlags) *cobra.Command {
	f := &reelFlags{}
	var (
		dir  string
		jobs int
	)
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Render every algorithm concurrently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return err
			}
			keys := machine.Keys()

			var pool *pb.Pool
			bars := make(map[string]*pb.ProgressBar, len(keys))
			if !g.quiet {
				for _, key := range keys {
					bars[key] = barTemplate.New(0).Set("prefix", fmt.Sprintf("%-12s", key))
				}
				list := make([]*pb.ProgressBar, 0, len(keys))
				for _, key := range keys {
					list = append(list, bars[key])
				}
				var err error
				if pool, err = pb.StartPool(list...); err != nil {
					sortreel.Logger().Warn("progress bars disabled", "err", err)
					pool = nil
					clear(bars)
				}
			}

			var mu sync.Mutex
			frames := make(map[string]int, len(keys))

			grp, ctx := errgroup.WithContext(cmd.Context())
			grp.SetLimit(jobs)
			for _, key := range keys {
				grp.Go(func() error {
					stats, err := f.reel(ctx, key, f.defaultOutput(dir, key), bars[key])
					if err != nil {
						return err
					}
					mu.Lock()
					frames[key] = stats.Frames
					mu.Unlock()
					return nil
				})
			}
			err := grp.Wait()
			if pool != nil {
				_ = pool.Stop()
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, key := range keys {
				fmt.Fprintf(out, "%s: %d frames\n", f.defaultOutput(dir, key), frames[key])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "reels", "output directory")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "concurrent renders")
	f.addMachineFlags(cmd.Flags())
	f.addVideoFlags(cmd.Flags())
	return cmd
}
