// Package reconcile drives a dependency reconciliation pass.
//
// A pass compares the versions declared in the build descriptor and encoded in vendored
// archive filenames against the latest versions published in the repository, then edits
// whatever is stale.
//
// # State machine
//
// Every tracked dependency moves through:
//
//	discovered -> queried -> stale -> edit_attempted -> edited | edit_warned
//	                      -> current
//	                      -> ahead
//	           -> query_failed
//
// A local version newer than the repository's is reported as ahead and never downgraded.
// Per-dependency failures are recorded on the item and the pass continues; only build
// validation failure is returned as an error, and only after backups and the recovery
// script are on disk.
//
// # Plan and apply
//
// ReconcileWithPlan performs discovery, repository queries (in parallel, bounded by
// Spec.Concurrency) and classification without touching the filesystem. ApplyPlan then
// mutates strictly sequentially: descriptor backup, declaration rewrites, archive
// replacements with their descriptor references, save, recovery script, staging cleanup,
// build validation, mirroring and history.
//
// A dry run stops after planning, so its classification is identical to a real run
// against the same inputs. Dry runs are still handed to the Recorder.
//
//	plan, err := reconcile.ReconcileWithPlan(ctx, spec)
//	result, err := reconcile.ApplyPlan(ctx, spec, plan, reconcile.Options{})
//
// # Cache
//
// GetOrBuildPlan caches dry-run plans per spec with a TTL and collapses concurrent builds
// through singleflight. The HTTP surface uses it so repeated /plan requests do not
// re-query the repository.
package reconcile
