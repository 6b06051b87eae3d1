// SPDX-License-Identifier: MIT

// Command springnet optimises the spectral gap of periodic spring networks.
//
// Usage:
//
//	springnet init [path]              write a default configuration
//	springnet run --config run.yaml    sample a network and optimise it
//	springnet resume --checkpoint f    continue from a checkpoint
//	springnet spectrum --config f      print the lowest frequencies
//	springnet history --history dir    list recorded runs or iterations
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "springnet:", err)
		os.Exit(1)
	}
}
