/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/swnetcfg/pkg/header"
	"github.com/NVIDIA/swnetcfg/pkg/netif"
	"github.com/NVIDIA/swnetcfg/pkg/probe"
)

// InventoryKind is the header kind of the interfaces listing.
const InventoryKind = "InterfaceInventory"

// Overridden in tests.
var (
	newCollector = netif.NewCollector
	newProber    = probe.New
	now          = time.Now
)

// Inventory is the document printed by the interfaces command.
type Inventory struct {
	header.Header `json:",inline" yaml:",inline"`

	Interfaces []netif.Interface `json:"interfaces" yaml:"interfaces"`
	Probes     []probe.Result    `json:"probes,omitempty" yaml:"probes,omitempty"`
}

func interfacesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "interfaces",
		Aliases:               []string{"if"},
		EnableShellCompletion: true,
		Usage:                 "List the interfaces the configure command would offer",
		Description: `Lists the active, non-loopback interfaces and their IPv4 addresses in
the same order as the configure menu. No files are read or written.

With --probe every address is pinged once and the outcome is included;
unlike configure, probing continues past unreachable addresses.

# Examples

  swnetcfg interfaces
  swnetcfg interfaces --probe --format table
  swnetcfg interfaces --exclude 'docker*' --exclude 'veth*' -o ifaces.json --format json`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "probe",
				Usage: "ping each interface address and report the outcome",
			},
			outputFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}

			ifaces, err := newCollector(cfg.ExcludeInterfaces).Collect(ctx)
			if err != nil {
				return err
			}

			inv := Inventory{
				Header:     *header.New(header.WithMetadata("version", version)),
				Interfaces: ifaces,
			}
			inv.Set(InventoryKind, now())

			if cmd.Bool("probe") {
				p := newProber(cfg.ProbeTimeout)
				for _, iface := range ifaces {
					if err := ctx.Err(); err != nil {
						return err
					}
					inv.Probes = append(inv.Probes, p.Probe(ctx, iface))
				}
			}

			slog.Debug("listing interfaces", slog.Int("count", len(ifaces)), slog.Bool("probed", len(inv.Probes) > 0))
			return writeOutput(ctx, outFormat, cmd.String("output"), inv)
		},
	}
}
