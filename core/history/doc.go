// Package history persists reconciliation passes with GORM.
//
// Each pass is stored as a Pass row with its summary counts and the paths of the backup
// and recovery script it produced, plus one Entry per dependency leg (and per skipped
// archive). The store implements reconcile.Recorder, so the orchestrator records a pass
// as its last step.
//
//	store := history.NewStore(db)
//	if err := store.Migrate(); err != nil { ... }
//	passes, err := store.List(ctx, 20)
package history
