// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "springnet.yaml"

// app carries flags and collaborators shared by all subcommands.
type app struct {
	logLevel string
	log      *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "springnet",
		Short:         "Spectral-gap optimisation of periodic spring networks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var lvl slog.Level
			if err := lvl.UnmarshalText([]byte(a.logLevel)); err != nil {
				return fmt.Errorf("--log-level %q: %w", a.logLevel, err)
			}
			a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(
		newInitCmd(a),
		newRunCmd(a),
		newResumeCmd(a),
		newSpectrumCmd(a),
		newHistoryCmd(a),
	)

	return root
}
