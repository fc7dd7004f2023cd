// Package maven is the client for the public package repository (Maven Central).
//
// It answers one question, "what is the latest published version of this coordinate",
// and downloads binary archives from the repository's deterministic layout.
//
// # Lookups
//
// LatestVersion issues a single search query keyed by exact group and artifact match,
// asks for one best result, and returns the version field of that result. Every failure
// mode is returned as a wrapped sentinel error (ErrNotFound, ErrNetwork, ErrParse) so the
// caller can treat them uniformly while still logging what actually happened.
//
// Lookups are:
//   - bounded by a per-request timeout
//   - throttled by a token bucket limiter
//   - cached per coordinate for CacheTTL, with concurrent lookups for the same
//     coordinate collapsed into one request
//
// # Downloads
//
// ArtifactURL builds {repo}/{group/as/path}/{artifact}/{version}/{artifact}-{version}[-{classifier}].jar
// and Download streams it into a local file while reporting progress.
package maven
