// Package systemd restarts the Stone+Wire and Wiretap units over D-Bus so
// regenerated configuration takes effect.
package systemd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/coreos/go-systemd/v22/dbus"

	"github.com/NVIDIA/swnetcfg/pkg/defaults"
	swerrors "github.com/NVIDIA/swnetcfg/pkg/errors"
)

const (
	restartMode = "replace"
	jobDone     = "done"
)

// Conn is the subset of the systemd D-Bus connection used here.
type Conn interface {
	RestartUnitContext(ctx context.Context, name, mode string, ch chan<- string) (int, error)
	Close()
}

// Dialer opens a systemd connection.
type Dialer func(ctx context.Context) (Conn, error)

// SystemDialer connects to the system bus.
func SystemDialer(ctx context.Context) (Conn, error) {
	return dbus.NewWithContext(ctx)
}

// Restarter restarts units one at a time and waits for each job.
type Restarter struct {
	Dial    Dialer
	Timeout time.Duration
}

// NewRestarter returns a Restarter on the system bus.
func NewRestarter() *Restarter {
	return &Restarter{Dial: SystemDialer, Timeout: defaults.ServiceRestartTimeout}
}

// Restart restarts each unit in order and stops at the first failure.
func (r *Restarter) Restart(ctx context.Context, units []string) error {
	if len(units) == 0 {
		return nil
	}

	conn, err := r.Dial(ctx)
	if err != nil {
		return swerrors.Wrap(swerrors.ErrCodeUnavailable, "failed to connect to systemd", err)
	}
	defer conn.Close()

	for _, unit := range units {
		if err := r.restartOne(ctx, conn, unit); err != nil {
			return err
		}
	}
	return nil
}

func (r *Restarter) restartOne(ctx context.Context, conn Conn, unit string) error {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaults.ServiceRestartTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	ch := make(chan string, 1)
	if _, err := conn.RestartUnitContext(ctx, unit, restartMode, ch); err != nil {
		return swerrors.WrapWithContext(swerrors.ErrCodeUnavailable,
			fmt.Sprintf("failed to restart %s", unit), err, map[string]any{"unit": unit})
	}

	select {
	case <-ctx.Done():
		return swerrors.WrapWithContext(swerrors.ErrCodeUnavailable,
			fmt.Sprintf("timed out restarting %s", unit), ctx.Err(), map[string]any{"unit": unit})
	case result := <-ch:
		if result != jobDone {
			return swerrors.WrapWithContext(swerrors.ErrCodeUnavailable,
				fmt.Sprintf("restart of %s finished with result %q", unit, result), nil,
				map[string]any{"unit": unit, "result": result})
		}
	}

	slog.Info("service restarted", slog.String("unit", unit), slog.Duration("duration", time.Since(start)))
	return nil
}
