package reconcile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"dependency-manager/core/backup"
	"dependency-manager/core/descriptor"
	"dependency-manager/core/library"
	"dependency-manager/core/maven"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ApplyPlan executes the edits of a plan and returns the pass result.
//
// With opts.DryRun nothing is modified and stale items stay stale. Otherwise edits are
// applied one at a time in plan order. The returned error is non-nil only when the pass
// could not be completed safely (descriptor backup or save failed) or when build
// validation failed; in the latter case the result is returned as well.
func ApplyPlan(ctx context.Context, spec *Spec, plan *Plan, opts Options) (*Result, error) {
	log := spec.logger()

	result := &Result{
		ID:      uuid.NewString(),
		DryRun:  opts.DryRun,
		Items:   append([]Item(nil), plan.Items...),
		Skipped: plan.Skipped,
		Changes: make(map[maven.Coordinate]Change),
		Started: time.Now(),
	}

	if opts.DryRun {
		for _, it := range result.Items {
			logItem(log, it)
		}
		finish(result)
		recordPass(ctx, spec, result)
		return result, nil
	}

	doc, err := descriptor.Load(spec.Descriptor)
	if err != nil {
		return nil, err
	}

	if spec.Backups != nil {
		result.DescriptorBackup, err = spec.Backups.BackupDescriptor(spec.Descriptor)
		if err != nil {
			return nil, fmt.Errorf("descriptor backup: %w", err)
		}
	}

	defer InvalidateCache(spec)

	for i := range result.Items {
		it := &result.Items[i]
		if it.Source != SourceDescriptor || it.State != StateStale {
			continue
		}
		it.State = StateEditAttempted
		if doc.Rewrite(it.Coordinate, it.Current, it.Latest) {
			it.State = StateEdited
		} else {
			warn(it, fmt.Errorf("%s:%s: %w", it.Coordinate, it.Current, descriptor.ErrNotMatched))
		}
	}

	for i := range result.Items {
		it := &result.Items[i]
		if it.Source != SourceArchive || it.State != StateStale {
			continue
		}
		it.State = StateEditAttempted
		rep, err := spec.Library.Update(ctx, it.record(), it.Latest, spec.progress(*it))
		if err != nil {
			warn(it, err)
			continue
		}
		it.State = StateEdited
		result.Replacements = append(result.Replacements, *rep)
		if !doc.RewriteArchiveReference(it.Coordinate.Artifact, it.Classifier, it.Current, it.Latest) {
			log.Debug("No archive reference in descriptor", zap.Stringer("coordinate", it.Coordinate))
		}
	}

	var saveErr error
	if doc.Changed() {
		if saveErr = doc.Save(spec.Descriptor); saveErr != nil {
			saveErr = fmt.Errorf("descriptor save: %w", saveErr)
		}
	}

	// Regenerated on every live pass; with no edits it restores the descriptor only.
	if spec.RecoveryScript != "" {
		if err := backup.WriteRecoveryScript(spec.RecoveryScript, recoveryFor(spec, result)); err != nil {
			log.Error("Failed to write recovery script", zap.Error(err))
		} else {
			result.RecoveryScript = spec.RecoveryScript
		}
	}

	if spec.Library != nil {
		if removed := spec.Library.CleanupStaging(); len(removed) > 0 {
			log.Debug("Removed staged downloads", zap.Strings("files", removed))
		}
	}

	for _, it := range result.Items {
		logItem(log, it)
	}
	finish(result)

	if saveErr != nil {
		return result, saveErr
	}

	validateErr := validate(ctx, spec, result, opts)

	if spec.Mirror != nil {
		mirrored, err := spec.Mirror.Upload(ctx, result.ID, backupFiles(result))
		if err != nil {
			log.Warn("Failed to mirror backups", zap.Error(err))
		}
		result.Mirrored = mirrored
	}

	recordPass(ctx, spec, result)

	return result, validateErr
}

// ReconcileAndApply plans and applies a pass.
func ReconcileAndApply(ctx context.Context, spec *Spec, opts Options) (*Result, error) {
	plan, err := ReconcileWithPlan(ctx, spec)
	if err != nil {
		return nil, err
	}
	return ApplyPlan(ctx, spec, plan, opts)
}

func warn(it *Item, err error) {
	it.State = StateEditWarned
	it.Failure = Classify(err)
	it.Message = err.Error()
}

func finish(result *Result) {
	for _, it := range result.Items {
		// Archive items follow descriptor items, so the archive leg wins.
		if it.State == StateEdited || (result.DryRun && it.State == StateStale) {
			result.Changes[it.Coordinate] = Change{From: it.Current, To: it.Latest, Source: it.Source}
		}
	}
	result.Summary = summarize(result.Items, result.Skipped)
	result.Finished = time.Now()
}

func validate(ctx context.Context, spec *Spec, result *Result, opts Options) error {
	if opts.SkipValidation || spec.Validator == nil || result.Summary.Updated == 0 {
		return nil
	}

	log := spec.logger()
	spec.Validator.Clean(ctx)
	if err := spec.Validator.Validate(ctx); err != nil {
		log.Error("Build validation failed",
			zap.String("recovery_script", result.RecoveryScript),
			zap.Error(err))
		return err
	}
	log.Info("Build validation passed")
	return nil
}

// recordPass stores the result when a recorder is configured. Failures are logged only.
func recordPass(ctx context.Context, spec *Spec, result *Result) {
	if spec.Recorder == nil {
		return
	}
	if err := spec.Recorder.Record(ctx, result); err != nil {
		spec.logger().Warn("Failed to record pass", zap.Error(err), zap.String("pass", result.ID))
	}
}

// recoveryFor lists only backups that exist on disk.
func recoveryFor(spec *Spec, result *Result) backup.Recovery {
	r := backup.Recovery{
		Descriptor: spec.Descriptor,
		StagingDir: spec.StagingDir,
		Created:    result.Started,
	}
	if exists(result.DescriptorBackup) {
		r.DescriptorBackup = result.DescriptorBackup
	}
	for _, rep := range result.Replacements {
		if !exists(rep.Backup) {
			continue
		}
		r.Archives = append(r.Archives, backup.ArchiveRestore{
			Backup:      rep.Backup,
			Original:    rep.Record.Path,
			Replacement: rep.Target,
		})
	}
	return r
}

func backupFiles(result *Result) []string {
	var files []string
	if result.DescriptorBackup != "" {
		files = append(files, result.DescriptorBackup)
	}
	for _, rep := range result.Replacements {
		if rep.BackupCreated {
			files = append(files, rep.Backup)
		}
	}
	if result.RecoveryScript != "" {
		files = append(files, result.RecoveryScript)
	}
	return files
}

func (s *Spec) progress(it Item) maven.Progress {
	if s.Progress == nil {
		return nil
	}
	rec := it.record()
	return func(written, total int64) {
		s.Progress(rec.Archive, written, total)
	}
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}

var _ Archives = (*library.Library)(nil)
