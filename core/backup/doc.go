// Package backup preserves everything a reconciliation pass mutates.
//
// Descriptor backups are timestamped copies under the backup directory and are never
// pruned. Archive backups live next to the archive as .backup siblings and are created by
// the library package; this package only references them.
//
// After every pass that attempted a mutation, a recovery script is regenerated. Running
// it restores the descriptor from its backup, moves each archive backup back into place
// (removing the replacement when its filename differs) and deletes leftover staged
// downloads.
//
// When object storage is enabled the Mirror uploads the pass's backups to a bucket under
// <prefix>/<pass id>/ so they survive a lost workspace.
package backup
