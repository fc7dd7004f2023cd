package cmd

import (
	"errors"
	"fmt"
	"sort"

	"dependency-manager/core/buildtool"
	"dependency-manager/core/maven"
	"dependency-manager/core/reconcile"
	"dependency-manager/feature/modernize"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for update command
	dryRunUpdate bool
	noTestUpdate bool
	suggestOnly  bool
)

// updateCmd runs a reconciliation pass against the project in the working directory.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update declared dependencies and vendored archives to their latest releases",
	Long: `Query Maven Central for every tracked dependency, rewrite stale versions in the
build descriptor and replace stale vendored archives.

A timestamped descriptor backup and a recovery script are written before anything
is changed. After an update the project is validated with the build wrapper.

Examples:
  # Show what would change
  update --dry-run

  # Update without running the build check
  update --no-test

  # Only print modernization suggestions
  update --suggestions`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&dryRunUpdate, "dry-run", false, "Only report what would be updated")
	updateCmd.Flags().BoolVar(&noTestUpdate, "no-test", false, "Skip the post-update build check")
	updateCmd.Flags().BoolVar(&suggestOnly, "suggestions", false, "Only print modernization suggestions")

	RootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.log.Sync()

	if suggestOnly {
		printSuggestions(a.log, a.tracked)
		return nil
	}

	if !dryRunUpdate && !noTestUpdate && !a.runner.Available() {
		return fmt.Errorf("build wrapper %q not found: run from the project root or pass --no-test", a.cfg.Project.BuildCommand)
	}

	result, err := reconcile.ReconcileAndApply(cmd.Context(), a.spec, reconcile.Options{
		DryRun:         dryRunUpdate,
		SkipValidation: noTestUpdate,
	})
	if result != nil {
		printUpdateReport(a.log, result)
	}
	if err != nil {
		if errors.Is(err, buildtool.ErrValidation) && result != nil && result.RecoveryScript != "" {
			a.log.Error("Build validation failed, run the recovery script to roll back",
				zap.String("recovery_script", "./"+result.RecoveryScript))
		}
		return err
	}

	printSuggestions(a.log, a.tracked)
	return nil
}

// printUpdateReport prints the outcome of a pass using logger.
func printUpdateReport(l *zap.Logger, r *reconcile.Result) {
	s := r.Summary

	l.Info("Update report",
		zap.String("pass", r.ID),
		zap.Bool("dry_run", r.DryRun),
		zap.Int("total_items", s.Total),
		zap.Int("updated", s.Updated),
		zap.Int("pending", s.Pending),
		zap.Int("warned", s.Warned),
		zap.Int("current", s.Current),
		zap.Int("ahead", s.Ahead),
		zap.Int("query_failed", s.QueryFailed),
		zap.Int("skipped", s.Skipped),
	)

	coords := make([]maven.Coordinate, 0, len(r.Changes))
	for c := range r.Changes {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool { return coords[i].String() < coords[j].String() })

	declared, vendored := 0, 0
	for _, c := range coords {
		ch := r.Changes[c]
		if ch.Source == reconcile.SourceArchive {
			vendored++
		} else {
			declared++
		}
		l.Info("Change",
			zap.String("dependency", c.String()),
			zap.String("source", string(ch.Source)),
			zap.String("from", ch.From),
			zap.String("to", ch.To),
		)
	}

	for _, it := range r.Items {
		if it.State == reconcile.StateEditWarned || it.State == reconcile.StateQueryFailed {
			l.Warn("Not updated",
				zap.String("dependency", it.Coordinate.String()),
				zap.String("source", string(it.Source)),
				zap.String("state", string(it.State)),
				zap.String("failure", string(it.Failure)),
				zap.String("message", it.Message),
			)
		}
	}
	for _, sk := range r.Skipped {
		l.Warn("Skipped archive",
			zap.String("dependency", sk.Coordinate.String()),
			zap.String("failure", string(sk.Failure)),
			zap.String("message", sk.Message),
		)
	}

	switch {
	case len(coords) == 0:
		l.Info("All dependencies are up to date")
	case r.DryRun:
		l.Info("Dry-run mode: No changes were made.", zap.Int("descriptor", declared), zap.Int("archives", vendored))
	default:
		l.Info("Dependencies updated",
			zap.Int("descriptor", declared),
			zap.Int("archives", vendored),
			zap.String("descriptor_backup", r.DescriptorBackup),
			zap.String("recovery_script", r.RecoveryScript),
		)
	}
}

// printSuggestions prints modernization suggestions for the tracked coordinates.
func printSuggestions(l *zap.Logger, tracked []maven.Coordinate) {
	for _, s := range modernize.For(tracked) {
		l.Info("Modernization suggestion",
			zap.String("from", s.From.String()),
			zap.String("to", s.To.String()),
			zap.String("reason", s.Reason),
		)
	}
}
