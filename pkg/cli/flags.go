/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/swnetcfg/pkg/defaults"
	"github.com/NVIDIA/swnetcfg/pkg/serializer"
)

const envPrefix = "SWNETCFG_"

func env(name string) cli.ValueSourceChain {
	return cli.EnvVars(envPrefix + name)
}

// globalFlags returns fresh root flags; subcommands inherit them.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML configuration file; flags and environment variables override its values",
			Sources: env("CONFIG"),
		},
		&cli.StringFlag{
			Name:    "framestore-map",
			Value:   defaults.FramestoreMapPath,
			Usage:   "path to sw_framestore_map",
			Sources: env("FRAMESTORE_MAP"),
		},
		&cli.StringFlag{
			Name:    "storage-config",
			Value:   defaults.StorageConfigPath,
			Usage:   "path to sw_storage.cfg (source of the framestore ID)",
			Sources: env("STORAGE_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "network-config",
			Value:   defaults.NetworkConfigPath,
			Usage:   "path to network.cfg (source of the host UUID)",
			Sources: env("NETWORK_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "hostname",
			Usage:   "framestore name written to sw_framestore_map (default: system host name)",
			Sources: env("HOSTNAME"),
		},
		&cli.StringFlag{
			Name:    "display-name",
			Usage:   "DisplayName written to network.cfg (default: left commented out)",
			Sources: env("DISPLAY_NAME"),
		},
		&cli.StringSliceFlag{
			Name:    "exclude",
			Aliases: []string{"x"},
			Value:   append([]string(nil), defaults.ExcludedInterfaces...),
			Usage:   "interface name pattern to skip (prefix*, *suffix, *contains*, exact; can be repeated)",
			Sources: env("EXCLUDE"),
		},
		&cli.BoolFlag{
			Name:    "skip-probe",
			Usage:   "do not ping interface addresses before prompting",
			Sources: env("SKIP_PROBE"),
		},
		&cli.DurationFlag{
			Name:    "probe-timeout",
			Value:   defaults.ProbeTimeout,
			Usage:   "how long to wait for each ping reply",
			Sources: env("PROBE_TIMEOUT"),
		},
		&cli.IntFlag{
			Name:    "max-attempts",
			Value:   defaults.MaxSelectionAttempts,
			Usage:   "invalid answers allowed per prompt before giving up",
			Sources: env("MAX_ATTEMPTS"),
		},
		&cli.BoolFlag{
			Name:    "dry-run",
			Usage:   "print the generated files without backing up or writing anything",
			Sources: env("DRY_RUN"),
		},
		&cli.BoolFlag{
			Name:    "restart-services",
			Usage:   "restart the Stone+Wire and Wiretap units through systemd after writing",
			Sources: env("RESTART_SERVICES"),
		},
		&cli.StringSliceFlag{
			Name:    "service",
			Value:   append([]string(nil), defaults.Services...),
			Usage:   "systemd unit restarted by --restart-services (can be repeated)",
			Sources: env("SERVICES"),
		},
		&cli.StringFlag{
			Name:    "metrics-file",
			Usage:   "write run metrics to this file in node-exporter textfile format",
			Sources: env("METRICS_FILE"),
		},
		&cli.StringFlag{
			Name:    "report",
			Usage:   "write a run report to this file ('-' for stdout)",
			Sources: env("REPORT"),
		},
		formatFlag(),
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
		&cli.BoolFlag{
			Name:  "log-json",
			Usage: "write logs as JSON",
		},
	}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}
