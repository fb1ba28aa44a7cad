package wizard

import (
	"github.com/NVIDIA/swnetcfg/pkg/backup"
	"github.com/NVIDIA/swnetcfg/pkg/header"
	"github.com/NVIDIA/swnetcfg/pkg/identity"
	"github.com/NVIDIA/swnetcfg/pkg/probe"
	"github.com/NVIDIA/swnetcfg/pkg/selector"
)

// ReportKind is the header kind of a run report.
const ReportKind = "ConfigurationReport"

// Selection is an interface chosen for a role.
type Selection struct {
	Interface string `json:"interface" yaml:"interface"`
	Address   string `json:"address" yaml:"address"`
	Attempts  int    `json:"attempts" yaml:"attempts"`
}

func selection(res selector.Result) *Selection {
	return &Selection{
		Interface: res.Interface.Name,
		Address:   res.Interface.Address,
		Attempts:  res.Attempts,
	}
}

// Report summarizes one configuration run.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	RunID    string         `json:"runId" yaml:"runId"`
	Hostname string         `json:"hostname" yaml:"hostname"`
	DryRun   bool           `json:"dryRun" yaml:"dryRun"`
	Probes   []probe.Result `json:"probes,omitempty" yaml:"probes,omitempty"`

	MetadataInterface *Selection `json:"metadataInterface,omitempty" yaml:"metadataInterface,omitempty"`
	DataInterface     *Selection `json:"dataInterface,omitempty" yaml:"dataInterface,omitempty"`

	Identity *identity.Identity `json:"identity,omitempty" yaml:"identity,omitempty"`
	Backups  []*backup.Result   `json:"backups,omitempty" yaml:"backups,omitempty"`
	Written  []string           `json:"written,omitempty" yaml:"written,omitempty"`

	// Restarted lists units restarted after the files were written.
	Restarted []string `json:"restarted,omitempty" yaml:"restarted,omitempty"`
}
