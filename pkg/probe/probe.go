// Package probe checks that interface addresses answer a single-packet
// liveness probe before they are written into configuration files.
package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"time"

	"github.com/NVIDIA/swnetcfg/pkg/defaults"
	swerrors "github.com/NVIDIA/swnetcfg/pkg/errors"
	"github.com/NVIDIA/swnetcfg/pkg/netif"
)

// Outcome is the typed result of a single probe.
type Outcome int

const (
	// Reachable means the address answered.
	Reachable Outcome = iota
	// Unreachable means the probe ran and got no answer.
	Unreachable
	// ProbeError means the probe itself could not be carried out.
	ProbeError
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case Reachable:
		return "reachable"
	case Unreachable:
		return "unreachable"
	case ProbeError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText renders the outcome by name in JSON and YAML output.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result is the outcome of probing one interface.
type Result struct {
	Interface string  `json:"interface" yaml:"interface"`
	Address   string  `json:"address" yaml:"address"`
	Outcome   Outcome `json:"outcome" yaml:"outcome"`
	Error     string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Runner executes a probe command and returns its error, if any.
type Runner func(ctx context.Context, name string, args ...string) error

// ExecRunner runs the command with os/exec, discarding its output.
func ExecRunner(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Prober sends single-packet ICMP echo requests through the ping binary.
type Prober struct {
	Command string
	Timeout time.Duration
	Run     Runner
}

// New returns a Prober using the system ping binary.
func New(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = defaults.ProbeTimeout
	}
	return &Prober{
		Command: defaults.ProbeCommand,
		Timeout: timeout,
		Run:     ExecRunner,
	}
}

type exitCoder interface {
	ExitCode() int
}

// Probe sends one echo request to the interface address.
func (p *Prober) Probe(ctx context.Context, iface netif.Interface) Result {
	res := Result{Interface: iface.Name, Address: iface.Address}

	if !iface.HasAddress() {
		res.Outcome = ProbeError
		res.Error = "no IPv4 address assigned"
		return res
	}

	secs := int(p.Timeout.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}

	pctx, cancel := context.WithTimeout(ctx, p.Timeout+time.Second)
	defer cancel()

	err := p.Run(pctx, p.Command, "-c", "1", "-W", strconv.Itoa(secs), iface.Address)
	res.Outcome, err = classify(pctx, err)
	if err != nil {
		res.Error = err.Error()
	}

	slog.Debug("probed interface",
		slog.String("interface", iface.Name),
		slog.String("address", iface.Address),
		slog.String("outcome", res.Outcome.String()))

	return res
}

func classify(ctx context.Context, err error) (Outcome, error) {
	if err == nil {
		return Reachable, nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return Unreachable, fmt.Errorf("no reply: %w", ctx.Err())
	}
	var ec exitCoder
	if errors.As(err, &ec) && ec.ExitCode() == 1 {
		return Unreachable, fmt.Errorf("no reply: %w", err)
	}
	return ProbeError, err
}

// All probes every interface in order and stops at the first one that is
// not Reachable. The failing result is included in the returned slice and
// the error carries ErrCodeUnreachable.
func (p *Prober) All(ctx context.Context, ifaces []netif.Interface) ([]Result, error) {
	results := make([]Result, 0, len(ifaces))
	for _, iface := range ifaces {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		r := p.Probe(ctx, iface)
		results = append(results, r)
		if r.Outcome != Reachable {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			return results, swerrors.WrapWithContext(swerrors.ErrCodeUnreachable,
				fmt.Sprintf("unable to ping all active interfaces (%s %s is %s), check your IP configuration",
					iface.Name, iface.Address, r.Outcome),
				errors.New(r.Error),
				map[string]any{"interface": iface.Name, "address": iface.Address, "outcome": r.Outcome.String()})
		}
	}
	return results, nil
}
