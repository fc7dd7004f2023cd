package library

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dependency-manager/core/maven"
	"dependency-manager/core/project"

	"go.uber.org/zap"
)

var (
	// ErrArchiveMissing means no file in the library directories matches a tracked archive.
	ErrArchiveMissing = errors.New("archive not found in library directories")
	// ErrFilename means a matching file does not encode a version under the naming convention.
	ErrFilename = errors.New("archive filename does not encode a version")
	// ErrFetchFailed means the replacement archive could not be downloaded.
	ErrFetchFailed = errors.New("archive download failed")
	// ErrIntegrity means the downloaded archive failed structural verification.
	ErrIntegrity = errors.New("archive failed integrity check")
)

const (
	stagingPrefix = "temp_"
	backupSuffix  = ".backup"
)

// Downloader fetches an archive from the repository into a local file.
type Downloader interface {
	Download(ctx context.Context, coord maven.Coordinate, version, classifier, dest string, progress maven.Progress) (int64, error)
}

// Record is a vendored archive found on disk.
type Record struct {
	Archive project.Archive `json:"archive"`
	// Path is the archive file, including its directory.
	Path    string `json:"path"`
	Version string `json:"version"`
}

// Dir returns the library directory holding the archive.
func (r Record) Dir() string {
	return filepath.Dir(r.Path)
}

// Problem is a tracked archive that could not be inventoried.
type Problem struct {
	Archive project.Archive
	Err     error
}

// Replacement describes a completed archive swap.
type Replacement struct {
	Record Record `json:"record"`
	// Target is the path of the new archive.
	Target string `json:"target"`
	// Backup is the .backup copy of the old archive.
	Backup string `json:"backup"`
	// BackupCreated is false when a backup from an earlier pass was kept as-is.
	BackupCreated bool `json:"backup_created"`
}

// Library inventories and replaces vendored archives.
type Library struct {
	dirs       []string
	stagingDir string
	downloader Downloader
	logger     *zap.Logger
}

// New creates a library over dirs, staging downloads in stagingDir.
func New(dirs []string, stagingDir string, downloader Downloader, logger *zap.Logger) *Library {
	if stagingDir == "" {
		stagingDir = "."
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Library{
		dirs:       dirs,
		stagingDir: stagingDir,
		downloader: downloader,
		logger:     logger,
	}
}

// Inventory locates every tracked archive. Archives that are absent or whose filename
// cannot be parsed are returned as problems.
func (l *Library) Inventory(archives []project.Archive) ([]Record, []Problem) {
	var records []Record
	var problems []Problem

	for _, a := range archives {
		path, v, err := l.locate(a)
		if err != nil {
			problems = append(problems, Problem{Archive: a, Err: err})
			continue
		}
		records = append(records, Record{Archive: a, Path: path, Version: v})
	}
	return records, problems
}

// Pattern returns the glob matching an archive's filenames.
func Pattern(a project.Archive) string {
	pattern := a.Coordinate.Artifact + "-*"
	if a.Classifier != "" {
		pattern += "-" + a.Classifier
	}
	return pattern + ".jar"
}

// locate returns the first regular file, in directory then name order, whose name parses
// as a version of a. Files matching the pattern without a parseable version are passed over.
func (l *Library) locate(a project.Archive) (string, string, error) {
	pattern := Pattern(a)
	rejected := ""
	for _, dir := range l.dirs {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			l.logger.Warn("Invalid archive pattern", zap.String("pattern", pattern), zap.Error(err))
			return "", "", fmt.Errorf("%s: %w", a, ErrArchiveMissing)
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err != nil || !info.Mode().IsRegular() {
				continue
			}
			v, ok := parseVersion(filepath.Base(m), a)
			if !ok {
				l.logger.Debug("Ignoring archive without a version", zap.String("archive", a.String()), zap.String("file", m))
				if rejected == "" {
					rejected = filepath.Base(m)
				}
				continue
			}
			return m, v, nil
		}
	}
	if rejected != "" {
		return "", "", fmt.Errorf("%s: %w", rejected, ErrFilename)
	}
	return "", "", fmt.Errorf("%s: %w", a, ErrArchiveMissing)
}

// nonVersionSuffixes mark secondary archives published next to the main jar.
var nonVersionSuffixes = []string{"-sources", "-javadoc", "-tests", "-test-sources"}

// parseVersion recovers the version from "artifact-<version>[-classifier].jar".
// The version must start with a digit and must not carry a secondary archive suffix.
func parseVersion(filename string, a project.Archive) (string, bool) {
	name := strings.TrimSuffix(filename, ".jar")
	rest, ok := strings.CutPrefix(name, a.Coordinate.Artifact+"-")
	if !ok {
		return "", false
	}
	if a.Classifier != "" {
		rest, ok = strings.CutSuffix(rest, "-"+a.Classifier)
		if !ok {
			return "", false
		}
	}
	if rest == "" || rest[0] < '0' || rest[0] > '9' {
		return "", false
	}
	for _, suffix := range nonVersionSuffixes {
		if strings.HasSuffix(rest, suffix) {
			return "", false
		}
	}
	return rest, true
}

// StagingPath returns where the archive for version is downloaded before verification.
func (l *Library) StagingPath(a project.Archive, version string) string {
	return filepath.Join(l.stagingDir, stagingPrefix+a.Coordinate.FileName(version, a.Classifier))
}

// Fetch downloads the archive at version into the staging directory.
func (l *Library) Fetch(ctx context.Context, a project.Archive, version string, progress maven.Progress) (string, error) {
	staged := l.StagingPath(a, version)

	n, err := l.downloader.Download(ctx, a.Coordinate, version, a.Classifier, staged, progress)
	if err != nil {
		_ = os.Remove(staged)
		return "", fmt.Errorf("%s %s: %w: %w", a, version, ErrFetchFailed, err)
	}

	info, statErr := os.Stat(staged)
	if statErr != nil || info.Size() == 0 || n == 0 {
		_ = os.Remove(staged)
		return "", fmt.Errorf("%s %s: %w: empty download", a, version, ErrFetchFailed)
	}
	return staged, nil
}

// Update fetches, verifies and swaps in the archive at version. On any failure before the
// swap the existing archive is untouched and no backup is created.
func (l *Library) Update(ctx context.Context, rec Record, version string, progress maven.Progress) (*Replacement, error) {
	staged, err := l.Fetch(ctx, rec.Archive, version, progress)
	if err != nil {
		return nil, err
	}

	if err := Verify(staged); err != nil {
		_ = os.Remove(staged)
		return nil, err
	}

	return l.Replace(rec, staged, version)
}

// Replace swaps a verified staged archive in for rec.
func (l *Library) Replace(rec Record, staged, version string) (*Replacement, error) {
	backup := rec.Path + backupSuffix
	created := false

	if _, err := os.Stat(backup); errors.Is(err, os.ErrNotExist) {
		if err := copyFile(rec.Path, backup); err != nil {
			return nil, fmt.Errorf("failed to back up %s: %w", rec.Path, err)
		}
		created = true
	} else if err != nil {
		return nil, fmt.Errorf("failed to inspect backup %s: %w", backup, err)
	} else {
		l.logger.Info("Keeping existing archive backup", zap.String("backup", backup))
	}

	target := filepath.Join(rec.Dir(), rec.Archive.Coordinate.FileName(version, rec.Archive.Classifier))
	if err := moveFile(staged, target); err != nil {
		return nil, fmt.Errorf("failed to install %s: %w", target, err)
	}

	if filepath.Clean(target) != filepath.Clean(rec.Path) {
		if err := os.Remove(rec.Path); err != nil {
			return nil, fmt.Errorf("failed to remove superseded archive %s: %w", rec.Path, err)
		}
	}

	return &Replacement{
		Record:        rec,
		Target:        target,
		Backup:        backup,
		BackupCreated: created,
	}, nil
}

// CleanupStaging removes leftover staged downloads and returns their paths.
func (l *Library) CleanupStaging() []string {
	matches, _ := filepath.Glob(filepath.Join(l.stagingDir, stagingPrefix+"*.jar"))
	var removed []string
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			l.logger.Warn("Failed to remove staged download", zap.String("path", m), zap.Error(err))
			continue
		}
		removed = append(removed, m)
	}
	return removed
}
