package reconcile

import (
	"context"
	"strings"

	"dependency-manager/core/backup"
	"dependency-manager/core/library"
	"dependency-manager/core/maven"
	"dependency-manager/core/project"

	"go.uber.org/zap"
)

// Repository resolves the latest published version of a coordinate.
type Repository interface {
	LatestVersion(ctx context.Context, coord maven.Coordinate) (string, error)
}

// Archives inventories and replaces vendored archives.
type Archives interface {
	Inventory(archives []project.Archive) ([]library.Record, []library.Problem)
	Update(ctx context.Context, rec library.Record, version string, progress maven.Progress) (*library.Replacement, error)
	CleanupStaging() []string
}

// Validator checks that the project still builds after an update.
type Validator interface {
	Clean(ctx context.Context)
	Validate(ctx context.Context) error
}

// Mirror copies backup files off the machine.
type Mirror interface {
	Upload(ctx context.Context, passID string, files []string) ([]string, error)
}

// Recorder persists pass results.
type Recorder interface {
	Record(ctx context.Context, result *Result) error
}

// Spec bundles the configuration and collaborators of a reconciliation pass.
// Optional collaborators (Validator, Mirror, Recorder, Progress) may be nil.
type Spec struct {
	// Descriptor is the build descriptor path.
	Descriptor string
	// Tracked are the coordinates reconciled in the descriptor.
	Tracked []maven.Coordinate
	// Archives are the vendored archives reconciled in the library directories.
	Archives []project.Archive
	// RecoveryScript is where the rollback script is written.
	RecoveryScript string
	// StagingDir is cleaned of temp_ downloads by the recovery script.
	StagingDir string
	// Concurrency bounds parallel repository queries.
	Concurrency int

	Repository Repository
	Library    Archives
	Backups    *backup.Manager
	Validator  Validator
	Mirror     Mirror
	Recorder   Recorder

	// Progress receives download progress for archive updates.
	Progress func(archive project.Archive, written, total int64)

	Logger *zap.Logger
}

// CacheKey returns a key identifying the inputs of a plan.
func (s *Spec) CacheKey() string {
	var b strings.Builder
	b.WriteString(s.Descriptor)
	for _, c := range s.Tracked {
		b.WriteString("|")
		b.WriteString(c.String())
	}
	b.WriteString("|archives")
	for _, a := range s.Archives {
		b.WriteString("|")
		b.WriteString(a.String())
	}
	return b.String()
}

func (s *Spec) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
