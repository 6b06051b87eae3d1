// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/springnet/checkpoint"
	"github.com/katalvlaran/springnet/config"
	"github.com/katalvlaran/springnet/geometry"
	"github.com/katalvlaran/springnet/optimizer"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		cfgPath string
		sinks   sinkFlags
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Sample a network from the configuration and optimise it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			state, err := sampleState(cfg)
			if err != nil {
				return err
			}
			return a.execute(cmd.Context(), cmd, session{
				cfg:   cfg,
				runID: checkpoint.NewRunID(),
				state: state,
			}, sinks)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", defaultConfigPath, "configuration file")
	sinks.register(cmd)

	return cmd
}

// sampleState draws N seeded positions and connects pairs within R_c.
func sampleState(cfg config.Config) (*optimizer.State, error) {
	pos, err := geometry.Sample(cfg.N, cfg.Seed, cfg.Box())
	if err != nil {
		return nil, err
	}

	return optimizer.NewState(pos, cfg.Rc, cfg.K0)
}
