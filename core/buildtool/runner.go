package buildtool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrValidation means the build could not resolve the updated dependencies.
var ErrValidation = errors.New("build validation failed")

const stderrTail = 2048

// Runner invokes the build wrapper with a bounded timeout.
type Runner struct {
	command string
	dir     string
	timeout time.Duration
	logger  *zap.Logger
}

// NewRunner creates a runner for command executed in dir.
func NewRunner(command, dir string, timeout time.Duration, logger *zap.Logger) *Runner {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{command: command, dir: dir, timeout: timeout, logger: logger}
}

// Available reports whether the build command can be executed.
func (r *Runner) Available() bool {
	if r.command == "" {
		return false
	}
	if strings.ContainsRune(r.command, filepath.Separator) {
		path := r.command
		if !filepath.IsAbs(path) {
			path = filepath.Join(r.dir, path)
		}
		info, err := os.Stat(path)
		return err == nil && !info.IsDir() && info.Mode()&0o111 != 0
	}
	_, err := exec.LookPath(r.command)
	return err == nil
}

// Clean runs the clean task. Failures are logged, not returned.
func (r *Runner) Clean(ctx context.Context) {
	if _, err := r.run(ctx, "clean"); err != nil {
		r.logger.Warn("Build clean failed", zap.Error(err))
	}
}

// Validate resolves the compile classpath.
func (r *Runner) Validate(ctx context.Context) error {
	stderr, err := r.run(ctx, "dependencies", "--configuration", "compileClasspath")
	if err == nil {
		return nil
	}
	if tail := lastBytes(stderr, stderrTail); tail != "" {
		return fmt.Errorf("%w: %w: %s", ErrValidation, err, tail)
	}
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

func (r *Runner) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	//nolint:gosec // G204: command comes from project configuration
	cmd := exec.CommandContext(ctx, r.command, args...)
	cmd.Dir = r.dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	r.logger.Debug("Build command finished",
		zap.String("command", r.command),
		zap.Strings("args", args),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err))

	if ctx.Err() == context.DeadlineExceeded {
		return stderr.String(), fmt.Errorf("timed out after %s", r.timeout)
	}
	return stderr.String(), err
}

func lastBytes(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}
