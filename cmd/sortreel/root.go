package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/sortreel"
)

type globalFlags struct {
	verbose bool
	quiet   bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	cmd := &cobra.Command{
		Use:           "sortreel",
		Short:         "Render sorting algorithms as video",
		Version:       sortreel.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			g.installLogger()
		},
	}
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log per-run details")
	cmd.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "disable logging and progress bars")

	cmd.AddCommand(
		newListCmd(),
		newRenderCmd(g),
		newStillCmd(),
		newAllCmd(g),
	)
	return cmd
}

func (g *globalFlags) installLogger() {
	if g.quiet {
		sortreel.SetLogger(nil)
		return
	}
	level := slog.LevelInfo
	if g.verbose {
		level = slog.LevelDebug
	}
	sortreel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
