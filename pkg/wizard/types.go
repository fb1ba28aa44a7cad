package wizard

import (
	"context"

	"github.com/NVIDIA/swnetcfg/pkg/netif"
	"github.com/NVIDIA/swnetcfg/pkg/probe"
)

// Configurator is the interface that wraps the Run method.
// Run walks the operator through one configuration pass.
type Configurator interface {
	Run(ctx context.Context) (*Report, error)
}

// InterfaceCollector lists candidate interfaces.
type InterfaceCollector interface {
	Collect(ctx context.Context) ([]netif.Interface, error)
}

// ReachabilityChecker probes interfaces and fails on the first one that
// does not answer.
type ReachabilityChecker interface {
	All(ctx context.Context, ifaces []netif.Interface) ([]probe.Result, error)
}

// ServiceRestarter restarts the named units.
type ServiceRestarter interface {
	Restart(ctx context.Context, units []string) error
}

// Stage names a step of a configuration run.
type Stage string

const (
	StageEnumerate    Stage = "enumerate"
	StageProbe        Stage = "probe"
	StageSelect       Stage = "select"
	StageReadIdentity Stage = "read-identity"
	StageRender       Stage = "render"
	StageBackupMap    Stage = "backup-map"
	StageWriteMap     Stage = "write-map"
	StageBackupNet    Stage = "backup-net"
	StageWriteNet     Stage = "write-net"
	StageRestart      Stage = "restart"
)
