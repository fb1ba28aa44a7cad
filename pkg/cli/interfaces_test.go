/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterfacesCmd(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		unreachable []string
		validate    func(*testing.T, map[string]any)
	}{
		{
			name: "list",
			args: []string{"interfaces"},
			validate: func(t *testing.T, doc map[string]any) {
				assert.Equal(t, InventoryKind, doc["kind"])
				ifaces := doc["interfaces"].([]any)
				require.Len(t, ifaces, 3)
				first := ifaces[0].(map[string]any)
				assert.Equal(t, "eth0", first["name"])
				assert.Equal(t, "10.0.0.5", first["address"])
				assert.Nil(t, doc["probes"])
			},
		},
		{
			name: "exclude",
			args: []string{"--exclude", "docker*", "interfaces"},
			validate: func(t *testing.T, doc map[string]any) {
				assert.Len(t, doc["interfaces"].([]any), 2)
			},
		},
		{
			name:        "probe continues past failures",
			args:        []string{"interfaces", "--probe"},
			unreachable: []string{"10.0.0.5"},
			validate: func(t *testing.T, doc map[string]any) {
				probes := doc["probes"].([]any)
				require.Len(t, probes, 3)
				assert.Equal(t, "unreachable", probes[0].(map[string]any)["outcome"])
				assert.Equal(t, "reachable", probes[1].(map[string]any)["outcome"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubHost(t, tt.unreachable...)
			path := filepath.Join(t.TempDir(), "ifaces.json")

			args := append([]string{name, "--format", "json"}, tt.args...)
			args = append(args, "--output", path)
			_, err := runRoot(t, "", args)
			require.NoError(t, err)

			b, err := os.ReadFile(path)
			require.NoError(t, err)
			var doc map[string]any
			require.NoError(t, json.Unmarshal(b, &doc))
			tt.validate(t, doc)
		})
	}
}

func TestInterfacesCmd_UnknownFormat(t *testing.T) {
	stubHost(t)
	_, err := runRoot(t, "", []string{name, "--format", "xml", "interfaces"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
