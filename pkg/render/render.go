// Package render produces sw_framestore_map and network.cfg contents from
// embedded text templates. Rendering is deterministic: the same input
// always yields byte-identical output.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"text/template"
	"unicode"

	swerrors "github.com/NVIDIA/swnetcfg/pkg/errors"
)

//go:embed templates/sw_framestore_map.tmpl
var framestoreMapTemplate string

//go:embed templates/network.cfg.tmpl
var networkConfigTemplate string

// MapData populates the framestore map template.
type MapData struct {
	Hostname        string
	DataAddress     string
	MetadataAddress string
	UUID            string
	FramestoreID    string
}

// SecondaryInterface reports whether the metadata address is declared as
// an extra access path, which happens when it differs from the data address.
func (d MapData) SecondaryInterface() bool {
	return d.MetadataAddress != d.DataAddress
}

func (d MapData) validate() error {
	missing := make([]string, 0)
	if d.Hostname == "" {
		missing = append(missing, "hostname")
	}
	if d.DataAddress == "" {
		missing = append(missing, "data address")
	}
	if d.MetadataAddress == "" {
		missing = append(missing, "metadata address")
	}
	if d.UUID == "" {
		missing = append(missing, "UUID")
	}
	if d.FramestoreID == "" {
		missing = append(missing, "framestore ID")
	}
	if len(missing) > 0 {
		return swerrors.Newf(swerrors.ErrCodeInvalidRequest,
			"cannot render framestore map, missing %s", strings.Join(missing, ", "))
	}
	return singleLine("framestore map", map[string]string{
		"hostname":         d.Hostname,
		"data address":     d.DataAddress,
		"metadata address": d.MetadataAddress,
		"UUID":             d.UUID,
		"framestore ID":    d.FramestoreID,
	})
}

// NetData populates the network configuration template.
type NetData struct {
	UUID              string
	DisplayName       string
	MetadataInterface string
	DataInterface     string
}

// DataInterfaces is the Data= list: the data interface first, then the
// metadata interface as fallback. A single name is listed once.
func (d NetData) DataInterfaces() string {
	if d.DataInterface == d.MetadataInterface {
		return d.DataInterface
	}
	return d.DataInterface + "," + d.MetadataInterface
}

func (d NetData) validate() error {
	if d.UUID == "" || d.MetadataInterface == "" || d.DataInterface == "" {
		return swerrors.New(swerrors.ErrCodeInvalidRequest,
			"cannot render network config, UUID and both interface names are required")
	}
	return singleLine("network config", map[string]string{
		"UUID":               d.UUID,
		"display name":       d.DisplayName,
		"metadata interface": d.MetadataInterface,
		"data interface":     d.DataInterface,
	})
}

// singleLine rejects values that would break out of their key=value line.
// Fields are checked in name order so the reported field is stable.
func singleLine(file string, fields map[string]string) error {
	names := make([]string, 0, len(fields))
	for n := range fields {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		if i := strings.IndexFunc(fields[n], unicode.IsControl); i >= 0 {
			return swerrors.WrapWithContext(swerrors.ErrCodeInvalidRequest,
				fmt.Sprintf("cannot render %s, %s contains a control character", file, n), nil,
				map[string]any{"field": n, "offset": i})
		}
	}
	return nil
}

// FramestoreMap renders the sw_framestore_map contents.
func FramestoreMap(d MapData) (string, error) {
	if err := d.validate(); err != nil {
		return "", err
	}
	return Template("sw_framestore_map", framestoreMapTemplate, d)
}

// NetworkConfig renders the network.cfg contents.
func NetworkConfig(d NetData) (string, error) {
	if err := d.validate(); err != nil {
		return "", err
	}
	return Template("network.cfg", networkConfigTemplate, d)
}

// Template parses tmpl and executes it against data.
func Template(name, tmpl string, data any) (string, error) {
	t, err := template.New(name).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s template: %w", name, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return buf.String(), nil
}
