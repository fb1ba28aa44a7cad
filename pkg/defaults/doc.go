// Package defaults provides centralized configuration constants for swnetcfg.
//
// This package defines installation paths, timeouts, retry bounds and other
// defaults used across the codebase. Centralizing these values keeps the
// CLI flags, the YAML configuration and the tests in agreement.
//
// # Categories
//
//   - Paths: locations of sw_framestore_map, sw_storage.cfg and network.cfg
//   - Selection: how many invalid answers the interface prompt tolerates
//   - Probing: liveness probe command and timeout
//   - Backups: suffix layout of the timestamped copies
//   - Services: systemd units restarted after a successful run
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/swnetcfg/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ProbeTimeout)
//	defer cancel()
package defaults
