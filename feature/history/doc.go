// Package history exposes pass history and dry-run plans over HTTP.
//
// Routes:
//
//	GET /history          recent passes, newest first (?limit=N)
//	GET /history/:id      one pass with its per-dependency entries
//	GET /plan             dry-run plan for the configured project (cached, ?refresh=true)
//
// The endpoints are read-only; applying a plan is left to the update command so every
// mutation happens with a recovery script on disk.
package history
