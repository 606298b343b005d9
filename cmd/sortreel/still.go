package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gogpu/sortreel/render"
	"github.com/gogpu/sortreel/surface"
)

func newStillCmd() *cobra.Command {
	f := &reelFlags{}
	var (
		output  string
		frame   int
		backend string
	)
	cmd := &cobra.Command{
		Use:   "still",
		Short: "Render a single frame to PNG",
		Long: "Render a single frame to PNG. With --backend record the drawing\n" +
			"commands of the frame are listed instead.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := f.newMachine(f.algorithm)
			if err != nil {
				return err
			}
			s, err := surface.NewSurfaceByName(backend, f.width, f.height)
			if err != nil {
				return err
			}
			if err := render.StillOn(cmd.Context(), m, frame, s); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch s := s.(type) {
			case *surface.ImageSurface:
				defer s.Close()
				if output == "" {
					output = f.algorithm + "-" + f.dataset + ".png"
				}
				if err := s.SavePNG(output); err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: step %d, %s\n", output, m.Counters().Steps, m.Counters())
			case *surface.Recorder:
				writeCommands(out, s.Commands())
			default:
				return fmt.Errorf("backend %q cannot be saved", backend)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "merge", "algorithm key (see list)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG (default <algorithm>-<dataset>.png)")
	cmd.Flags().IntVar(&frame, "frame", -1, "frame to capture (-1 = finished state)")
	cmd.Flags().StringVar(&backend, "backend", "image", "surface backend (image, record)")
	f.addMachineFlags(cmd.Flags())
	return cmd
}

func writeCommands(w io.Writer, cmds []surface.Command) {
	for _, c := range cmds {
		switch c.Op {
		case surface.OpClear:
			fmt.Fprintf(w, "%s #%02x%02x%02x\n", c.Op, c.Color.R, c.Color.G, c.Color.B)
		case surface.OpFillRect:
			fmt.Fprintf(w, "%s %g,%g %gx%g #%02x%02x%02x\n", c.Op, c.X, c.Y, c.W, c.H, c.Color.R, c.Color.G, c.Color.B)
		case surface.OpDrawText:
			fmt.Fprintf(w, "%s %g,%g %q\n", c.Op, c.X, c.Y, c.Text)
		}
	}
}
