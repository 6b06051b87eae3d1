// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/springnet/checkpoint"
)

func newResumeCmd(a *app) *cobra.Command {
	var (
		sinks sinkFlags
		maxIt int
	)
	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Continue a run from its checkpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := checkpoint.Load(sinks.checkpointPath)
			if errors.Is(err, checkpoint.ErrNotFound) {
				return fmt.Errorf("nothing to resume: %w", err)
			}
			if err != nil {
				return err
			}
			state, err := snap.ToState()
			if err != nil {
				return err
			}
			cfg := snap.Config
			if maxIt > 0 {
				cfg.MaxIt = maxIt
			}
			if err = cfg.Validate(); err != nil {
				return err
			}
			a.log.Info("resuming", "run_id", snap.RunID, "iteration", snap.Iteration, "max_it", cfg.MaxIt)
			return a.execute(cmd.Context(), cmd, session{
				cfg:   cfg,
				runID: snap.RunID,
				state: state,
				done:  snap.Iteration,
			}, sinks)
		},
	}
	sinks.register(cmd)
	cmd.Flags().IntVar(&maxIt, "max-it", 0, "override the total iteration budget")

	return cmd
}
