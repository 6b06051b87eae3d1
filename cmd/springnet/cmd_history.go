// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/springnet/checkpoint"
)

func newHistoryCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded runs, or the iterations of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := checkpoint.OpenExistingHistory(dir, a.log)
			if err != nil {
				return err
			}
			defer h.Close()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				runs, err := h.Runs()
				if err != nil {
					return err
				}
				for _, id := range runs {
					fmt.Fprintln(out, id)
				}
				return nil
			}

			recs, err := h.List(args[0])
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "iteration\tgap\tloss\tzero_modes\tat")
			for _, r := range recs {
				fmt.Fprintf(tw, "%d\t%.8g\t%.8g\t%d\t%s\n", r.Iteration, r.Gap, r.Loss, r.ZeroModes, r.At.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&dir, "history", "springnet.history", "badger history directory")

	return cmd
}
