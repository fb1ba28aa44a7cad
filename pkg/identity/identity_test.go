package identity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	swerrors "github.com/NVIDIA/swnetcfg/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestRead(t *testing.T) {
	netCfg := writeFile(t, "network.cfg", "[Local]\n# UUID=commented\nUUID=ABCD-1234 \n")
	storage := writeFile(t, "sw_storage.cfg", "[Framestore]\nID=7\n")

	id, err := Read(netCfg, storage)
	require.NoError(t, err)
	assert.Equal(t, &Identity{UUID: "ABCD-1234", FramestoreID: "7"}, id)
}

func TestLookup_FirstMatchWins(t *testing.T) {
	p := writeFile(t, "sw_storage.cfg", "ID=30\nID=31\n")

	v, err := Lookup(p, "ID")
	require.NoError(t, err)
	assert.Equal(t, "30", v)
}

func TestLookup_PrefixIsExact(t *testing.T) {
	p := writeFile(t, "network.cfg", "HOSTUUID=nope\nUUIDX=nope\nUUID=ABCDABCD-1234-3456-5678-ABCDEFABCDEF\n")

	v, err := ReadUUID(p)
	require.NoError(t, err)
	assert.Equal(t, "ABCDABCD-1234-3456-5678-ABCDEFABCDEF", v)
}

func TestLookup_MissingFile(t *testing.T) {
	_, err := ReadUUID(filepath.Join(t.TempDir(), "network.cfg"))
	require.Error(t, err)
	assert.Equal(t, swerrors.ErrCodeNotFound, swerrors.CodeOf(err))
	assert.Equal(t, swerrors.ExitNotFound, swerrors.ExitCode(err))
}

func TestLookup_MissingKey(t *testing.T) {
	p := writeFile(t, "network.cfg", "[Local]\nDisplayName=flame\n")

	_, err := ReadUUID(p)
	require.Error(t, err)
	assert.Equal(t, swerrors.ErrCodeMissingKey, swerrors.CodeOf(err))
	assert.Contains(t, err.Error(), "UUID=")
}

func TestReadUUID_Empty(t *testing.T) {
	p := writeFile(t, "network.cfg", "UUID=   \n")

	_, err := ReadUUID(p)
	assert.Equal(t, swerrors.ErrCodeInvalidIdentity, swerrors.CodeOf(err))
}

func TestReadFramestoreID_NotInteger(t *testing.T) {
	p := writeFile(t, "sw_storage.cfg", "ID=seven\n")

	_, err := ReadFramestoreID(p)
	require.Error(t, err)
	assert.Equal(t, swerrors.ErrCodeInvalidIdentity, swerrors.CodeOf(err))
}

func TestReadFramestoreID_KeepsSourceText(t *testing.T) {
	p := writeFile(t, "sw_storage.cfg", "[Framestore]\nID= 007\n")

	id, err := ReadFramestoreID(p)
	require.NoError(t, err)
	assert.Equal(t, "007", id)
}

func TestRead_PropagatesStorageError(t *testing.T) {
	netCfg := writeFile(t, "network.cfg", "UUID=ABCD-1234\n")

	_, err := Read(netCfg, filepath.Join(t.TempDir(), "missing.cfg"))
	assert.Equal(t, swerrors.ErrCodeNotFound, swerrors.CodeOf(err))
}
