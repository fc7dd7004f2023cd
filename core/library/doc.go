// Package library manages vendored binary archives (jars) living in the project's library
// directories.
//
// # Inventory
//
// Each tracked archive is located by globbing its filename convention,
// artifact-<version>[-classifier].jar, across the library directories in order. The first
// match wins and its version is recovered by stripping the artifact prefix and classifier
// suffix. Archives without a match are reported, not treated as errors.
//
// # Update protocol
//
//  1. Fetch downloads the new archive to a temp_ staging file.
//  2. Verify opens it as a zip container and reads every entry, so truncated or corrupt
//     downloads fail before anything on disk is touched. A failed verification deletes
//     the staged file and creates no backup.
//  3. Replace copies the current archive to a .backup sibling (an existing backup is kept),
//     moves the staged file to its final name, and only then removes the old file if the
//     name changed.
//
// Because the backup copy is taken before the old file is removed, a crash at any point
// leaves the original archive or its backup on disk.
package library
