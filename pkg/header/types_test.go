package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	h := New(WithKind("InterfaceInventory"), WithMetadata("host", "flame01"))

	assert.Equal(t, "InterfaceInventory", h.Kind)
	assert.Equal(t, "flame01", h.Metadata["host"])
}

func TestWithMetadata_NilMap(t *testing.T) {
	h := &Header{}
	WithMetadata("k", "v")(h)
	assert.Equal(t, map[string]string{"k": "v"}, h.Metadata)
}

func TestHeader_Set(t *testing.T) {
	h := New(WithMetadata("run-id", "abc"))
	h.Set("ConfigurationReport", time.Date(2025, 3, 7, 14, 25, 1, 0, time.UTC))

	assert.Equal(t, "ConfigurationReport", h.Kind)
	assert.Equal(t, "swnetcfg.nvidia.com/v1alpha1", h.APIVersion)
	assert.Equal(t, "2025-03-07T14:25:01Z", h.Metadata[TimestampKey])
	assert.Equal(t, "abc", h.Metadata["run-id"], "existing metadata kept")
}
