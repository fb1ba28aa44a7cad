// Package wizard drives one interactive configuration run: it lists the
// active interfaces, checks that they answer, asks the operator which ones
// carry metadata and data traffic, then backs up and regenerates
// sw_framestore_map and network.cfg.
package wizard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/swnetcfg/pkg/backup"
	"github.com/NVIDIA/swnetcfg/pkg/config"
	"github.com/NVIDIA/swnetcfg/pkg/console"
	swerrors "github.com/NVIDIA/swnetcfg/pkg/errors"
	"github.com/NVIDIA/swnetcfg/pkg/header"
	"github.com/NVIDIA/swnetcfg/pkg/identity"
	"github.com/NVIDIA/swnetcfg/pkg/netif"
	"github.com/NVIDIA/swnetcfg/pkg/probe"
	"github.com/NVIDIA/swnetcfg/pkg/render"
	"github.com/NVIDIA/swnetcfg/pkg/selector"
)

// RestartHint is printed when services are not restarted automatically.
const RestartHint = "Restart Stone+Wire and Wiretap services in order to apply changes"

// NetworkWizard runs the configuration flow. Zero-valued dependencies are
// replaced with the live implementations on first use.
type NetworkWizard struct {
	// Version is stamped into the run report.
	Version string

	Config *config.Config

	Collector InterfaceCollector
	Prober    ReachabilityChecker

	// Restarter is used only when Config.RestartServices is set.
	Restarter ServiceRestarter

	// In supplies operator answers, Out receives prompts and progress.
	In  io.Reader
	Out *console.Printer

	// Now stamps backups and the report. One timestamp is taken per run.
	Now func() time.Time
}

func (w *NetworkWizard) init() {
	if w.Config == nil {
		w.Config = config.Default()
	}
	if w.Collector == nil {
		w.Collector = netif.NewCollector(w.Config.ExcludeInterfaces)
	}
	if w.Prober == nil {
		w.Prober = probe.New(w.Config.ProbeTimeout)
	}
	if w.In == nil {
		w.In = os.Stdin
	}
	if w.Out == nil {
		w.Out = console.New(os.Stdout, false)
	}
	if w.Now == nil {
		w.Now = time.Now
	}
}

// Run executes one configuration pass and returns what it did. Files are
// only touched after every read, prompt and render has succeeded. Each file
// is backed up before it is rewritten, and nothing already rewritten is
// rolled back when a later step fails.
func (w *NetworkWizard) Run(ctx context.Context) (*Report, error) {
	w.init()

	start := time.Now()
	rep, err := w.run(ctx)
	runDuration.Observe(time.Since(start).Seconds())

	status := "success"
	switch {
	case err != nil:
		status = strings.ToLower(string(swerrors.CodeOf(err)))
	case rep.DryRun:
		status = "dry-run"
	}
	runTotal.WithLabelValues(status).Inc()

	if err != nil {
		slog.Error("configuration run failed",
			slog.String("run", rep.RunID),
			slog.String("code", string(swerrors.CodeOf(err))),
			slog.String("error", err.Error()))
		return rep, err
	}

	slog.Info("configuration run complete",
		slog.String("run", rep.RunID),
		slog.Bool("dry_run", rep.DryRun),
		slog.Int("written", len(rep.Written)))
	return rep, nil
}

func (w *NetworkWizard) run(ctx context.Context) (*Report, error) {
	cfg := w.Config
	now := w.Now()

	rep := &Report{
		Header: *header.New(header.WithMetadata("run-id", uuid.NewString())),
		DryRun: cfg.DryRun,
	}
	rep.RunID = rep.Metadata["run-id"]
	if w.Version != "" {
		rep.Metadata["version"] = w.Version
	}
	rep.Set(ReportKind, now)

	hostname, err := cfg.ResolveHostname()
	if err != nil {
		return rep, err
	}
	rep.Hostname = hostname
	rep.Metadata["hostname"] = hostname

	slog.Debug("starting configuration run",
		slog.String("run", rep.RunID),
		slog.String("hostname", hostname),
		slog.Bool("dry_run", cfg.DryRun))

	var ifaces []netif.Interface
	err = w.stage(StageEnumerate, func() error {
		var err error
		ifaces, err = w.Collector.Collect(ctx)
		if err != nil {
			return err
		}
		interfaceCount.Set(float64(len(ifaces)))
		return nil
	})
	if err != nil {
		return rep, err
	}

	if cfg.SkipProbe {
		slog.Info("skipping reachability probe")
	} else {
		err = w.stage(StageProbe, func() error {
			w.Out.Info("Checking that active interfaces answer...")
			results, err := w.Prober.All(ctx, ifaces)
			rep.Probes = results
			for _, r := range results {
				probeTotal.WithLabelValues(r.Outcome.String()).Inc()
			}
			return err
		})
		if err != nil {
			return rep, err
		}
	}

	var meta, data selector.Result
	err = w.stage(StageSelect, func() error {
		menu := selector.New(ifaces, w.In, w.Out, cfg.MaxAttempts)
		var err error
		if meta, err = choose(ctx, menu, selector.RoleMetadata); err != nil {
			return err
		}
		if data, err = choose(ctx, menu, selector.RoleData); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return rep, err
	}
	rep.MetadataInterface = selection(meta)
	rep.DataInterface = selection(data)

	var id *identity.Identity
	err = w.stage(StageReadIdentity, func() error {
		var err error
		id, err = identity.Read(cfg.Paths.NetworkConfig, cfg.Paths.StorageConfig)
		return err
	})
	if err != nil {
		return rep, err
	}
	rep.Identity = id

	var mapContent, netContent string
	err = w.stage(StageRender, func() error {
		var err error
		mapContent, err = render.FramestoreMap(render.MapData{
			Hostname:        hostname,
			DataAddress:     data.Interface.Address,
			MetadataAddress: meta.Interface.Address,
			UUID:            id.UUID,
			FramestoreID:    id.FramestoreID,
		})
		if err != nil {
			return err
		}
		netContent, err = render.NetworkConfig(render.NetData{
			UUID:              id.UUID,
			DisplayName:       cfg.DisplayName,
			MetadataInterface: meta.Interface.Name,
			DataInterface:     data.Interface.Name,
		})
		return err
	})
	if err != nil {
		return rep, err
	}

	if cfg.DryRun {
		w.preview(cfg.Paths.FramestoreMap, mapContent)
		w.preview(cfg.Paths.NetworkConfig, netContent)
		w.Out.Info("Dry run, no files were changed")
		return rep, nil
	}

	if err := w.replace(ctx, rep, StageBackupMap, StageWriteMap, cfg.Paths.FramestoreMap, mapContent, now); err != nil {
		return rep, err
	}
	if err := w.replace(ctx, rep, StageBackupNet, StageWriteNet, cfg.Paths.NetworkConfig, netContent, now); err != nil {
		return rep, err
	}

	w.Out.Success("Configuration files updated")

	if !cfg.RestartServices {
		w.Out.Printf(console.StyleBold, "%s\n", RestartHint)
		return rep, nil
	}

	err = w.stage(StageRestart, func() error {
		if w.Restarter == nil {
			return swerrors.New(swerrors.ErrCodeUnavailable, "service restart requested but no restarter is configured")
		}
		w.Out.Info("Restarting %s", strings.Join(cfg.Services, ", "))
		if err := w.Restarter.Restart(ctx, cfg.Services); err != nil {
			return err
		}
		rep.Restarted = append(rep.Restarted, cfg.Services...)
		return nil
	})
	if err != nil {
		return rep, err
	}
	w.Out.Success("Services restarted")
	return rep, nil
}

func choose(ctx context.Context, menu *selector.Menu, role selector.Role) (selector.Result, error) {
	res, err := menu.Select(ctx, role)
	if err != nil {
		return res, err
	}
	if res.Outcome == selector.OutOfAttempts {
		return res, swerrors.WrapWithContext(swerrors.ErrCodeOutOfAttempts,
			fmt.Sprintf("no valid %s interface selected after %d attempts", role, res.Attempts), nil,
			map[string]any{"role": string(role), "attempts": res.Attempts})
	}
	return res, nil
}

// replace backs up path and then rewrites it with content.
func (w *NetworkWizard) replace(ctx context.Context, rep *Report, backupStage, writeStage Stage, path, content string, now time.Time) error {
	err := w.stage(backupStage, func() error {
		if err := interrupted(ctx); err != nil {
			return err
		}
		w.Out.Info("Backing up %s to %s", path, backup.PathFor(path, now))
		res, err := backup.Copy(path, now)
		if err != nil {
			return err
		}
		rep.Backups = append(rep.Backups, res)
		return nil
	})
	if err != nil {
		return err
	}

	return w.stage(writeStage, func() error {
		if err := interrupted(ctx); err != nil {
			return err
		}
		if err := writeFile(path, content); err != nil {
			return err
		}
		rep.Written = append(rep.Written, path)
		slog.Info("wrote configuration file", slog.String("path", path), slog.Int("bytes", len(content)))
		return nil
	})
}

func (w *NetworkWizard) preview(path, content string) {
	w.Out.Printf(console.StyleHeader, "--- %s (not written) ---\n", path)
	w.Out.Printf(console.StylePlain, "%s", content)
}

func (w *NetworkWizard) stage(s Stage, fn func() error) error {
	start := time.Now()
	defer func() {
		stageDuration.WithLabelValues(string(s)).Observe(time.Since(start).Seconds())
	}()

	slog.Debug("entering stage", slog.String("stage", string(s)))
	if err := fn(); err != nil {
		slog.Debug("stage failed", slog.String("stage", string(s)), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func interrupted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return swerrors.Wrap(swerrors.ErrCodeCanceled, "configuration interrupted", err)
	}
	return nil
}

// writeFile truncates and rewrites an existing file in place, keeping its
// permissions.
func writeFile(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return swerrors.Wrap(swerrors.ErrCodeNotFound, fmt.Sprintf("unable to locate %s", path), err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return swerrors.Wrap(swerrors.ErrCodeInternal, fmt.Sprintf("failed to open %s for writing", path), err)
	}
	if _, err := io.WriteString(f, content); err != nil {
		_ = f.Close()
		return swerrors.Wrap(swerrors.ErrCodeInternal, fmt.Sprintf("failed to write %s", path), err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return swerrors.Wrap(swerrors.ErrCodeInternal, fmt.Sprintf("failed to sync %s", path), err)
	}
	if err := f.Close(); err != nil {
		return swerrors.Wrap(swerrors.ErrCodeInternal, fmt.Sprintf("failed to close %s", path), err)
	}
	return nil
}
