// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli implements the command-line interface for the swnetcfg tool.
//
// # Overview
//
// swnetcfg configures which network interfaces a Stone+Wire host uses for
// metadata and for data traffic. It is run by an operator on the host,
// usually once after installation or after a network change.
//
// # Commands
//
// configure - Interactive configuration (also the default action):
//
//	swnetcfg [configure] [--dry-run] [--skip-probe] [--restart-services]
//
// Lists the active interfaces, pings their addresses, prompts for the
// metadata and data interfaces, then backs up and rewrites
// sw_framestore_map and network.cfg. The host UUID is taken from
// network.cfg and the framestore ID from sw_storage.cfg; neither is ever
// generated.
//
// interfaces - Inspect the interface menu without prompting:
//
//	swnetcfg interfaces [--probe] [--output FILE] [--format yaml|json|table]
//
// # Global Flags
//
//	--config, -c         YAML configuration file
//	--framestore-map     Path to sw_framestore_map
//	--storage-config     Path to sw_storage.cfg
//	--network-config     Path to network.cfg
//	--hostname           Framestore name (default: system host name)
//	--display-name       DisplayName written to network.cfg
//	--exclude, -x        Interface name pattern to skip (repeatable)
//	--skip-probe         Do not ping interface addresses
//	--probe-timeout      Wait per ping reply (default: 2s)
//	--max-attempts       Invalid answers allowed per prompt (default: 5)
//	--dry-run            Print generated files, change nothing
//	--restart-services   Restart units through systemd after writing
//	--service            Unit to restart (repeatable)
//	--metrics-file       Write metrics in node-exporter textfile format
//	--report             Write a run report ('-' for stdout)
//	--format, -t         Output format: yaml, json, table (default: yaml)
//	--debug              Enable debug logging
//	--log-json           Output logs in JSON format
//
// # Configuration Precedence
//
// Built-in defaults are overridden by the --config file, which is
// overridden by SWNETCFG_* environment variables, which are overridden by
// flags.
//
// # Environment Variables
//
//	LOG_LEVEL                 Set logging verbosity (debug, info, warn, error)
//	SWNETCFG_CONFIG           Same as --config
//	SWNETCFG_FRAMESTORE_MAP   Same as --framestore-map
//	SWNETCFG_STORAGE_CONFIG   Same as --storage-config
//	SWNETCFG_NETWORK_CONFIG   Same as --network-config
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, execution failure)
//	2  Interrupted, or input closed before a selection was made
//	3  A configuration file was not found
//	4  No active non-loopback interfaces
//	5  An interface address did not answer the probe
//	6  Too many invalid selections
//	7  UUID or ID missing or malformed
//	8  Service restart failed
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized packages:
//   - pkg/wizard - Configuration run orchestration and metrics
//   - pkg/netif - Interface enumeration
//   - pkg/probe - Reachability checks
//   - pkg/selector - Interactive menu
//   - pkg/identity, pkg/backup, pkg/render - File handling
//   - pkg/systemd - Service restarts
//   - pkg/serializer - Output formatting
//   - pkg/logging - Structured logging
package cli
