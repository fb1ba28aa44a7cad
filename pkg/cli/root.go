/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/swnetcfg/pkg/console"
	swerrors "github.com/NVIDIA/swnetcfg/pkg/errors"
	"github.com/NVIDIA/swnetcfg/pkg/logging"
)

const name = "swnetcfg"

var (
	// overridden during build with ldflags
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the CLI against os.Args and exits with the status mapped
// from the returned error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().Run(ctx, os.Args)
	stop()
	if err != nil {
		console.New(os.Stderr, isTerminal(os.Stderr)).Fail("%s", err)
		os.Exit(swerrors.ExitCode(err))
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		ShellComplete:         commandLister,
		Usage:                 "Configure Stone+Wire metadata and data network interfaces",
		Description: `Detects the active network interfaces, asks which one carries metadata
and which one carries data traffic, then backs up and regenerates
sw_framestore_map and network.cfg. Running without a subcommand is the
same as "configure".`,
		Flags:  globalFlags(),
		Before: setupLogging,
		Action: runConfigure,
		Commands: []*cli.Command{
			configureCmd(),
			interfacesCmd(),
		},
	}
}

func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logging.SetDefaultStructuredLogger(logging.Options{
		Module:  name,
		Version: version,
		Debug:   cmd.Bool("debug"),
		JSON:    cmd.Bool("log-json"),
		Writer:  cmd.Root().ErrWriter,
	})
	return ctx, nil
}

// commandLister prints the visible subcommands for shell completion.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil || cmd.Root() == nil {
		return
	}
	for _, c := range cmd.Root().Commands {
		if c.Hidden {
			continue
		}
		_, _ = fmt.Fprintln(cmd.Root().Writer, c.Name)
	}
}
