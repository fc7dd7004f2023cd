// Package project describes the build being reconciled: where the build descriptor and
// vendored archives live, which coordinates are tracked, and how the build is validated.
//
// All of it is an explicit value passed into the reconcile engine, so several passes
// against different projects can run in one process without sharing state.
package project
