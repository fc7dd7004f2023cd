package backup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// TimestampLayout is the suffix format of descriptor backups (YYYYmmdd_HHMMSS).
const TimestampLayout = "20060102_150405"

// Manager writes descriptor backups into a directory.
type Manager struct {
	dir    string
	now    func() time.Time
	logger *zap.Logger
}

// NewManager creates a manager writing into dir.
func NewManager(dir string, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{dir: dir, now: time.Now, logger: logger}
}

// Dir returns the backup directory.
func (m *Manager) Dir() string {
	return m.dir
}

// BackupDescriptor copies path to <dir>/<name>.<timestamp>. A backup taken in the same
// second as an existing one gets a numeric suffix instead of overwriting it.
func (m *Manager) BackupDescriptor(path string) (string, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	base := filepath.Join(m.dir, filepath.Base(path)+"."+m.now().Format(TimestampLayout))
	dest := base
	for i := 1; ; i++ {
		err := copyExclusive(path, dest)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("failed to back up %s: %w", path, err)
		}
		dest = fmt.Sprintf("%s_%d", base, i)
	}

	m.logger.Info("Descriptor backed up", zap.String("backup", dest))
	return dest, nil
}

func copyExclusive(src, dst string) error {
	//nolint:gosec // G304: path is the configured descriptor
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	//nolint:gosec // G304: destination lives in the backup directory
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
