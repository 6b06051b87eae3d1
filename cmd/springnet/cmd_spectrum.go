// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/springnet/checkpoint"
	"github.com/katalvlaran/springnet/config"
	"github.com/katalvlaran/springnet/dynmat"
	"github.com/katalvlaran/springnet/objective"
	"github.com/katalvlaran/springnet/optimizer"
	"github.com/katalvlaran/springnet/topology"
)

func newSpectrumCmd(a *app) *cobra.Command {
	var (
		cfgPath  string
		ckptPath string
		modes    int
	)
	cmd := &cobra.Command{
		Use:   "spectrum",
		Short: "Print the lowest vibrational frequencies of a network",
		Long: "Print the lowest frequencies of the network described by a checkpoint " +
			"(--checkpoint) or freshly sampled from a configuration (--config).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				cfg   config.Config
				state *optimizer.State
				err   error
			)
			if ckptPath != "" {
				snap, lerr := checkpoint.Load(ckptPath)
				if lerr != nil {
					return lerr
				}
				cfg = snap.Config
				state, err = snap.ToState()
			} else {
				if cfg, err = config.Load(cfgPath); err != nil {
					return err
				}
				state, err = sampleState(cfg)
			}
			if err != nil {
				return err
			}

			solver, err := cfg.NewSolver()
			if err != nil {
				return err
			}
			d, err := dynmat.Assemble(state.Positions, state.Edges, state.Stiffness)
			if err != nil {
				return err
			}
			if modes <= 0 {
				modes = objective.RequiredModes(cfg.NGap)
			}
			spec, err := solver.Solve(d, modes)
			if err != nil {
				return err
			}
			a.log.Debug("solved", "backend", solver.Backend().Name(), "modes", len(spec.Frequencies))

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "mode\tomega\tzero")
			for i, w := range spec.Frequencies {
				fmt.Fprintf(tw, "%d\t%.8g\t%v\n", i+1, w, spec.ZeroModes[i])
			}
			if err = tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "zero modes: %d (rigid translations expected: %d)\n",
				spec.ZeroModeCount(), topology.RigidModes(state.Edges, state.Len()))
			if gap, gerr := objective.Gap(spec.Frequencies, cfg.NGap); gerr == nil {
				fmt.Fprintf(out, "gap n=%d: %.8g\n", cfg.NGap, gap)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", defaultConfigPath, "configuration file")
	cmd.Flags().StringVar(&ckptPath, "checkpoint", "", "read the network from this checkpoint instead")
	cmd.Flags().IntVar(&modes, "modes", 0, "number of lowest modes (default n_gap+1)")

	return cmd
}
