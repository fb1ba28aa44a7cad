/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/NVIDIA/swnetcfg/pkg/config"
	swerrors "github.com/NVIDIA/swnetcfg/pkg/errors"
	"github.com/NVIDIA/swnetcfg/pkg/serializer"
)

// parseOutputFormat extracts and validates the output format from CLI flags.
// Returns the validated format or an error if the format is unknown.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", swerrors.Newf(swerrors.ErrCodeInvalidRequest,
			"unknown output format: %q, valid formats are: yaml, json, table", outFormat)
	}
	return outFormat, nil
}

// buildConfig resolves the run configuration. Values come from the
// built-in defaults, then the --config file, then environment variables
// and flags.
func buildConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		slog.Debug("loaded config file", slog.String("path", path))
		cfg = loaded
	}

	var opts []config.Option
	if cmd.IsSet("framestore-map") {
		opts = append(opts, config.WithFramestoreMap(cmd.String("framestore-map")))
	}
	if cmd.IsSet("storage-config") {
		opts = append(opts, config.WithStorageConfig(cmd.String("storage-config")))
	}
	if cmd.IsSet("network-config") {
		opts = append(opts, config.WithNetworkConfig(cmd.String("network-config")))
	}
	if cmd.IsSet("hostname") {
		opts = append(opts, config.WithHostname(cmd.String("hostname")))
	}
	if cmd.IsSet("display-name") {
		opts = append(opts, config.WithDisplayName(cmd.String("display-name")))
	}
	if cmd.IsSet("exclude") {
		opts = append(opts, config.WithExcludeInterfaces(cmd.StringSlice("exclude")))
	}
	if cmd.IsSet("skip-probe") {
		opts = append(opts, config.WithSkipProbe(cmd.Bool("skip-probe")))
	}
	if cmd.IsSet("probe-timeout") {
		opts = append(opts, config.WithProbeTimeout(cmd.Duration("probe-timeout")))
	}
	if cmd.IsSet("max-attempts") {
		opts = append(opts, config.WithMaxAttempts(cmd.Int("max-attempts")))
	}
	if cmd.IsSet("dry-run") {
		opts = append(opts, config.WithDryRun(cmd.Bool("dry-run")))
	}
	if cmd.IsSet("restart-services") {
		opts = append(opts, config.WithRestartServices(cmd.Bool("restart-services")))
	}
	if cmd.IsSet("service") {
		opts = append(opts, config.WithServices(cmd.StringSlice("service")))
	}
	if cmd.IsSet("metrics-file") {
		opts = append(opts, config.WithMetricsFile(cmd.String("metrics-file")))
	}
	if cmd.IsSet("report") {
		opts = append(opts, config.WithReportFile(cmd.String("report")))
	}
	cfg.Apply(opts...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// writeOutput serializes v to path (stdout when empty or "-").
func writeOutput(ctx context.Context, format serializer.Format, path string, v any) error {
	ser, err := serializer.NewFileWriterOrStdout(format, path)
	if err != nil {
		return swerrors.Wrap(swerrors.ErrCodeInternal, fmt.Sprintf("failed to open %s", path), err)
	}
	if c, ok := ser.(serializer.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				slog.Warn("failed to close output", slog.String("path", path), slog.String("error", err.Error()))
			}
		}()
	}
	return ser.Serialize(ctx, v)
}

// isTerminal reports whether v is an *os.File attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
