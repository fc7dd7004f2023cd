// Package buildtool runs the project's build wrapper to confirm the dependency graph still
// resolves after an update.
//
// Clean runs "<command> clean" and only warns on failure. Validate runs
// "<command> dependencies --configuration compileClasspath"; a non-zero exit or a timeout
// is reported as ErrValidation carrying the tail of the captured stderr.
package buildtool
