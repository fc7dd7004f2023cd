package cmd

import (
	"fmt"
	"time"

	"dependency-manager/core/backup"
	"dependency-manager/core/buildtool"
	"dependency-manager/core/config"
	"dependency-manager/core/database"
	"dependency-manager/core/history"
	"dependency-manager/core/library"
	"dependency-manager/core/logger"
	"dependency-manager/core/maven"
	"dependency-manager/core/project"
	"dependency-manager/core/reconcile"
	"dependency-manager/core/storage"

	"go.uber.org/zap"
)

// app holds the collaborators shared by the commands.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	client  *maven.Client
	runner  *buildtool.Runner
	store   *history.Store
	spec    *reconcile.Spec
	tracked []maven.Coordinate
}

// newApp loads configuration from the working directory and wires a pass.
// The history store and backup mirror are optional: failures are logged and the pass runs without them.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	tracked, err := cfg.Project.TrackedCoordinates()
	if err != nil {
		return nil, err
	}
	archives, err := cfg.Project.TrackedArchives()
	if err != nil {
		return nil, err
	}

	client := maven.NewClient(cfg.Repository)
	runner := buildtool.NewRunner(cfg.Project.BuildCommand, ".", cfg.Project.BuildTimeout, l)

	a := &app{
		cfg:     cfg,
		log:     l,
		client:  client,
		runner:  runner,
		tracked: tracked,
	}
	a.spec = &reconcile.Spec{
		Descriptor:     cfg.Project.Descriptor,
		Tracked:        tracked,
		Archives:       archives,
		RecoveryScript: cfg.Project.RecoveryScript,
		StagingDir:     cfg.Project.StagingDir,
		Concurrency:    cfg.Project.Concurrency,
		Repository:     client,
		Library:        library.New(cfg.Project.LibraryDirs, cfg.Project.StagingDir, client, l),
		Backups:        backup.NewManager(cfg.Project.BackupDir, l),
		Validator:      runner,
		Progress:       progressLogger(l),
		Logger:         l,
	}

	if cfg.Database.Enabled {
		if db, err := database.Connect(cfg.Database); err != nil {
			l.Warn("Optional history database connection failed", zap.Error(err))
		} else {
			store := history.NewStore(db)
			if err := store.Migrate(); err != nil {
				l.Warn("Failed to migrate history tables", zap.Error(err))
			} else {
				a.store = store
				a.spec.Recorder = store
			}
		}
	}

	if cfg.Storage.Enabled {
		if sc, err := storage.NewClient(cfg.Storage); err != nil {
			l.Warn("Optional backup mirror unavailable", zap.Error(err))
		} else {
			a.spec.Mirror = backup.NewMirror(sc, cfg.Storage.Bucket, cfg.Storage.Prefix, l)
		}
	}

	return a, nil
}

// progressLogger reports archive downloads at most once per second.
func progressLogger(l *zap.Logger) func(project.Archive, int64, int64) {
	var last time.Time
	return func(a project.Archive, written, total int64) {
		if total > 0 && written < total && time.Since(last) < time.Second {
			return
		}
		last = time.Now()
		fields := []zap.Field{zap.String("archive", a.String()), zap.Int64("written", written)}
		if total > 0 {
			fields = append(fields, zap.Int64("total", total), zap.Float64("percent", float64(written)*100/float64(total)))
		}
		l.Debug("Downloading", fields...)
	}
}
