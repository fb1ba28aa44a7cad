// Package identity reads the workstation UUID and framestore ID from the
// existing Stone+Wire and Wiretap configuration. The wizard never
// generates identity: whatever these files hold is carried verbatim into
// the regenerated files.
package identity

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	swerrors "github.com/NVIDIA/swnetcfg/pkg/errors"
)

const (
	uuidKey = "UUID"
	idKey   = "ID"
)

// Identity is the host identity carried into the regenerated files.
type Identity struct {
	UUID         string `json:"uuid" yaml:"uuid"`
	FramestoreID string `json:"framestoreId" yaml:"framestoreId"`
}

// Read loads the UUID from networkCfg and the framestore ID from storageCfg.
func Read(networkCfg, storageCfg string) (*Identity, error) {
	u, err := ReadUUID(networkCfg)
	if err != nil {
		return nil, err
	}
	id, err := ReadFramestoreID(storageCfg)
	if err != nil {
		return nil, err
	}
	return &Identity{UUID: u, FramestoreID: id}, nil
}

// ReadUUID returns the value of the first UUID= line in path.
func ReadUUID(path string) (string, error) {
	v, err := Lookup(path, uuidKey)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", swerrors.WrapWithContext(swerrors.ErrCodeInvalidIdentity,
			fmt.Sprintf("empty %s= value in %s", uuidKey, path), nil, map[string]any{"path": path})
	}
	if _, perr := uuid.Parse(v); perr != nil {
		slog.Warn("workstation UUID is not in canonical form, using it verbatim",
			slog.String("uuid", v), slog.String("path", path), slog.String("error", perr.Error()))
	}
	return v, nil
}

// ReadFramestoreID returns the value of the first ID= line in path. The
// value must parse as an integer but is returned as written, so ID=007 stays
// 007 in the regenerated map.
func ReadFramestoreID(path string) (string, error) {
	v, err := Lookup(path, idKey)
	if err != nil {
		return "", err
	}
	if _, err := strconv.Atoi(v); err != nil {
		return "", swerrors.WrapWithContext(swerrors.ErrCodeInvalidIdentity,
			fmt.Sprintf("framestore %s= value %q in %s is not an integer", idKey, v, path), err,
			map[string]any{"path": path})
	}
	return v, nil
}

// Lookup scans path for the first line starting with key= and returns the
// trimmed value. A missing file yields ErrCodeNotFound and a missing key
// yields ErrCodeMissingKey.
func Lookup(path, key string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", swerrors.WrapWithContext(swerrors.ErrCodeNotFound,
				fmt.Sprintf("unable to locate %s", path), err, map[string]any{"path": path})
		}
		return "", swerrors.Wrap(swerrors.ErrCodeInternal, fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	prefix := key + "="
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix)), nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", swerrors.Wrap(swerrors.ErrCodeInternal, fmt.Sprintf("failed to read %s", path), err)
	}

	return "", swerrors.WrapWithContext(swerrors.ErrCodeMissingKey,
		fmt.Sprintf("no %s line found in %s", prefix, path), nil,
		map[string]any{"path": path, "key": key})
}
