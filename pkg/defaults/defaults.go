package defaults

import "time"

// Installation paths of the managed configuration files.
const (
	// FramestoreMapPath is the Stone+Wire framestore map rewritten by the wizard.
	FramestoreMapPath = "/opt/Autodesk/sw/cfg/sw_framestore_map"

	// StorageConfigPath holds the numeric framestore ID (ID=...).
	StorageConfigPath = "/opt/Autodesk/sw/cfg/sw_storage.cfg"

	// NetworkConfigPath is the Wiretap network configuration. It is both the
	// source of the workstation UUID and a file rewritten by the wizard.
	NetworkConfigPath = "/opt/Autodesk/cfg/network.cfg"
)

// Interface selection.
const (
	// MaxSelectionAttempts bounds how many invalid answers a prompt accepts.
	MaxSelectionAttempts = 5
)

// ExcludedInterfaces are name patterns never offered to the operator.
// Loopback is filtered by flag, so nothing is excluded by name unless the
// operator asks for it.
var ExcludedInterfaces []string

// Reachability probing.
const (
	// ProbeTimeout bounds a single-packet liveness probe.
	ProbeTimeout = 2 * time.Second

	// ProbeCommand is the binary used for liveness probes.
	ProbeCommand = "ping"
)

// Backups.
const (
	// BackupInfix separates the original file name from the timestamp.
	BackupInfix = ".orig."

	// BackupTimeLayout renders year, abbreviated month, day and time of day,
	// e.g. 2025_Mar_07_time_142501.
	BackupTimeLayout = "2006_Jan_02_time_150405"
)

// Service restart.
const (
	// ServiceRestartTimeout bounds waiting for a systemd restart job.
	ServiceRestartTimeout = 60 * time.Second
)

// Services restarted with --restart-services.
var Services = []string{"stone+wire.service", "wiretap.service"}
