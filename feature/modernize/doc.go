// Package modernize suggests replacements for legacy dependencies.
//
// Version updates keep a dependency current within its own coordinate; some of the
// tracked libraries have been superseded by new coordinates entirely (commons-lang by
// commons-lang3, log4j by log4j-core). The suggestions are advisory and never applied.
// They are printed after an update pass, by the suggest command, and served at
// GET /suggestions.
package modernize
