/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/swnetcfg/pkg/config"
	"github.com/NVIDIA/swnetcfg/pkg/console"
	"github.com/NVIDIA/swnetcfg/pkg/serializer"
	"github.com/NVIDIA/swnetcfg/pkg/systemd"
	"github.com/NVIDIA/swnetcfg/pkg/wizard"
)

// Overridden in tests.
var newRestarter = func() wizard.ServiceRestarter {
	return systemd.NewRestarter()
}

func configureCmd() *cli.Command {
	return &cli.Command{
		Name:                  "configure",
		EnableShellCompletion: true,
		Usage:                 "Select interfaces and regenerate sw_framestore_map and network.cfg",
		Description: `Runs the interactive configuration:

  1. list the active, non-loopback interfaces with their IPv4 addresses
  2. ping every listed address (skip with --skip-probe)
  3. prompt for the metadata interface, then the data interface
  4. read the UUID from network.cfg and the ID from sw_storage.cfg
  5. back up each file to <file>.orig.<timestamp> and rewrite it

# Examples

Run against the default Stone+Wire paths:
  swnetcfg configure

Preview the generated files without touching anything:
  swnetcfg configure --dry-run

Restart the services afterwards and keep a report:
  swnetcfg configure --restart-services --report /var/log/swnetcfg.yaml`,
		Action: runConfigure,
	}
}

func runConfigure(ctx context.Context, cmd *cli.Command) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidatePaths(); err != nil {
		return err
	}

	root := cmd.Root()
	if !isTerminal(root.Reader) {
		slog.Warn("standard input is not a terminal, answers are read from the input stream")
	}

	w := &wizard.NetworkWizard{
		Version:   version,
		Config:    cfg,
		Collector: newCollector(cfg.ExcludeInterfaces),
		Prober:    newProber(cfg.ProbeTimeout),
		In:        root.Reader,
		Out:       console.New(root.Writer, isTerminal(root.Writer)),
		Now:       now,
	}
	if cfg.RestartServices {
		w.Restarter = newRestarter()
	}

	rep, runErr := w.Run(ctx)

	// Artifacts describe failed and interrupted runs too.
	if err := writeArtifacts(context.WithoutCancel(ctx), cmd, cfg, rep); err != nil {
		if runErr == nil {
			return err
		}
		slog.Warn("failed to write run artifacts", slog.String("error", err.Error()))
	}
	return runErr
}

func writeArtifacts(ctx context.Context, cmd *cli.Command, cfg *config.Config, rep *wizard.Report) error {
	if cfg.ReportFile != "" && rep != nil {
		format := serializer.FormatFromPath(cfg.ReportFile)
		if cmd.IsSet("format") {
			f, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			format = f
		}
		if err := writeOutput(ctx, format, cfg.ReportFile, rep); err != nil {
			return err
		}
		slog.Debug("wrote run report", slog.String("path", cfg.ReportFile), slog.String("format", string(format)))
	}

	if cfg.MetricsFile != "" {
		if err := wizard.WriteMetrics(cfg.MetricsFile); err != nil {
			return err
		}
		slog.Debug("wrote metrics", slog.String("path", cfg.MetricsFile))
	}
	return nil
}
