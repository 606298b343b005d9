package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/sortreel/dataset"
	"github.com/gogpu/sortreel/machine"
)

func newListCmd() *cobra.Command {
	var keys int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List algorithms and datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeList(cmd.OutOrStdout(), keys)
		},
	}
	cmd.Flags().IntVarP(&keys, "keys", "n", 1024, "key count used for the step estimate")
	return cmd
}

func writeList(w io.Writer, n int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tTITLE\tTIME\tSPACE\tSTEPS")
	for _, info := range machine.Catalog() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t~%d\n",
			info.Key, info.Title, info.Complexity, info.Space, info.Estimate(n))
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "DATASET")
	for _, name := range dataset.Names() {
		fmt.Fprintln(tw, name)
	}
	return tw.Flush()
}
