// Package netif discovers the host's active network interfaces and resolves
// each one to an IPv4 address using the native interface table.
package netif

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	swerrors "github.com/NVIDIA/swnetcfg/pkg/errors"
)

// Interface is one candidate network interface.
type Interface struct {
	// Index is the OS interface index.
	Index int `json:"index" yaml:"index"`

	// Name is the OS-assigned interface name (eth0, ens1f0, ib0, ...).
	Name string `json:"name" yaml:"name"`

	// Address is the first IPv4 address assigned to the interface, or empty.
	Address string `json:"address,omitempty" yaml:"address,omitempty"`

	// Flags is the textual form of the interface flags.
	Flags string `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// HasAddress reports whether the interface has an IPv4 address.
func (i Interface) HasAddress() bool {
	return i.Address != ""
}

// Source is the OS interface table. It exists so tests can supply a
// synthetic table.
type Source interface {
	Interfaces() ([]net.Interface, error)
	Addrs(name string) ([]net.Addr, error)
}

// SystemSource reads the live interface table through package net.
type SystemSource struct{}

// Interfaces returns all system interfaces in enumeration order.
func (SystemSource) Interfaces() ([]net.Interface, error) {
	return net.Interfaces()
}

// Addrs returns the unicast addresses of the named interface.
func (SystemSource) Addrs(name string) ([]net.Addr, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil, err
	}
	return iface.Addrs()
}

// Collector enumerates interfaces that are up, running and not loopback.
type Collector struct {
	// Source is the interface table. Nil means SystemSource.
	Source Source

	// Exclude lists name patterns to skip (see Excluded).
	Exclude []string
}

// NewCollector returns a Collector over the live interface table.
func NewCollector(exclude []string) *Collector {
	return &Collector{Source: SystemSource{}, Exclude: exclude}
}

func (c *Collector) source() Source {
	if c.Source == nil {
		return SystemSource{}
	}
	return c.Source
}

// Collect returns the active, non-loopback interfaces in OS enumeration
// order with their IPv4 addresses resolved. It fails with
// ErrCodeNoInterfaces when nothing qualifies.
func (c *Collector) Collect(ctx context.Context) ([]Interface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all, err := c.source().Interfaces()
	if err != nil {
		return nil, swerrors.Wrap(swerrors.ErrCodeInternal, "failed to list network interfaces", err)
	}

	res := make([]Interface, 0, len(all))
	for _, ni := range all {
		if !active(ni) {
			slog.Debug("skipping inactive interface", slog.String("name", ni.Name), slog.String("flags", ni.Flags.String()))
			continue
		}
		if Excluded(ni.Name, c.Exclude) {
			slog.Debug("skipping excluded interface", slog.String("name", ni.Name))
			continue
		}

		addr, err := c.Resolve(ni.Name)
		if err != nil {
			return nil, err
		}

		res = append(res, Interface{
			Index:   ni.Index,
			Name:    ni.Name,
			Address: addr,
			Flags:   ni.Flags.String(),
		})
	}

	if len(res) == 0 {
		return nil, swerrors.New(swerrors.ErrCodeNoInterfaces, "no active non-loopback network interfaces found")
	}

	slog.Debug("collected network interfaces", slog.Int("count", len(res)))
	return res, nil
}

// Resolve returns the first IPv4 address configured on the named
// interface, or an empty string when it has none.
func (c *Collector) Resolve(name string) (string, error) {
	addrs, err := c.source().Addrs(name)
	if err != nil {
		return "", swerrors.WrapWithContext(swerrors.ErrCodeInternal,
			fmt.Sprintf("failed to read addresses of %s", name), err,
			map[string]any{"interface": name})
	}

	for _, a := range addrs {
		if ip := ipv4(a); ip != nil {
			return ip.String(), nil
		}
	}
	return "", nil
}

func active(ni net.Interface) bool {
	if ni.Flags&net.FlagLoopback != 0 {
		return false
	}
	return ni.Flags&net.FlagUp != 0 && ni.Flags&net.FlagRunning != 0
}

func ipv4(a net.Addr) net.IP {
	var ip net.IP
	switch v := a.(type) {
	case *net.IPNet:
		ip = v.IP
	case *net.IPAddr:
		ip = v.IP
	default:
		return nil
	}
	return ip.To4()
}
