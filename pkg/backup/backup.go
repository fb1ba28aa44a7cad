// Package backup makes write-once, metadata-preserving copies of
// configuration files before they are regenerated.
package backup

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/NVIDIA/swnetcfg/pkg/defaults"
	swerrors "github.com/NVIDIA/swnetcfg/pkg/errors"
)

// Result describes a completed backup.
type Result struct {
	Source  string      `json:"source" yaml:"source"`
	Path    string      `json:"path" yaml:"path"`
	Size    int64       `json:"size" yaml:"size"`
	Mode    os.FileMode `json:"mode" yaml:"mode"`
	ModTime time.Time   `json:"modTime" yaml:"modTime"`
}

// Suffix returns the backup suffix for t, e.g. ".orig.2025_Mar_07_time_142501".
// The timestamp is rendered in UTC.
func Suffix(t time.Time) string {
	return defaults.BackupInfix + t.UTC().Format(defaults.BackupTimeLayout)
}

// PathFor returns the backup path of src for timestamp t.
func PathFor(src string, t time.Time) string {
	return src + Suffix(t)
}

// Copy copies src to its timestamped sibling, preserving permissions,
// modification time and, where supported, ownership. The destination must
// not exist. Copy returns only after the copy is synced and verified on disk.
func Copy(src string, t time.Time) (*Result, error) {
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, swerrors.WrapWithContext(swerrors.ErrCodeNotFound,
				fmt.Sprintf("unable to locate %s", src), err, map[string]any{"path": src})
		}
		return nil, swerrors.Wrap(swerrors.ErrCodeInternal, fmt.Sprintf("failed to stat %s", src), err)
	}
	if !info.Mode().IsRegular() {
		return nil, swerrors.Newf(swerrors.ErrCodeInvalidRequest, "%s is not a regular file", src)
	}

	dst := PathFor(src, t)
	if err := copyFile(src, dst, info); err != nil {
		return nil, err
	}

	if err := preserve(dst, info); err != nil {
		return nil, swerrors.Wrap(swerrors.ErrCodeInternal, fmt.Sprintf("failed to preserve metadata on %s", dst), err)
	}

	got, err := os.Stat(dst)
	if err != nil {
		return nil, swerrors.Wrap(swerrors.ErrCodeInternal, fmt.Sprintf("backup %s missing after copy", dst), err)
	}
	if got.Size() != info.Size() {
		return nil, swerrors.Newf(swerrors.ErrCodeInternal,
			"backup %s is %d bytes, source %s is %d bytes", dst, got.Size(), src, info.Size())
	}

	slog.Debug("backed up file",
		slog.String("source", src),
		slog.String("backup", dst),
		slog.Int64("size", got.Size()))

	return &Result{
		Source:  src,
		Path:    dst,
		Size:    got.Size(),
		Mode:    got.Mode(),
		ModTime: got.ModTime(),
	}, nil
}

func copyFile(src, dst string, info os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return swerrors.Wrap(swerrors.ErrCodeInternal, fmt.Sprintf("failed to open %s", src), err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		if os.IsExist(err) {
			return swerrors.WrapWithContext(swerrors.ErrCodeInvalidRequest,
				fmt.Sprintf("backup %s already exists", dst), err, map[string]any{"path": dst})
		}
		return swerrors.Wrap(swerrors.ErrCodeInternal, fmt.Sprintf("failed to create %s", dst), err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return swerrors.Wrap(swerrors.ErrCodeInternal, fmt.Sprintf("failed to copy %s to %s", src, dst), err)
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return swerrors.Wrap(swerrors.ErrCodeInternal, fmt.Sprintf("failed to sync %s", dst), err)
	}
	if err := out.Close(); err != nil {
		return swerrors.Wrap(swerrors.ErrCodeInternal, fmt.Sprintf("failed to close %s", dst), err)
	}
	return nil
}

// preserve applies src's mode and times to dst, then its owner.
func preserve(dst string, info os.FileInfo) error {
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	if err := os.Chtimes(dst, accessTime(info), info.ModTime()); err != nil {
		return err
	}
	return chown(dst, info)
}
