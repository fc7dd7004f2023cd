// Package descriptor reads and rewrites dependency declarations inside a build descriptor
// (build.gradle.kts).
//
// # Declaration shapes
//
// A declaration is found by trying an ordered list of shapes; the first shape that
// matches wins:
//
//	implementation(("group:artifact:version"))
//	implementation("group:artifact:version")
//	spotbugsPlugins(("group:artifact:version"))
//	spotbugsPlugins("group:artifact:version")
//
// Any of them may carry a classifier after the version ("group:artifact:2.1:jdk15"). The
// classifier is reported separately and is never part of the version.
//
// # Rewriting
//
// Rewrite replaces the version segment of exactly one declaration and leaves everything
// around it (keyword, quoting, classifier) byte-for-byte intact. When no declaration with
// the expected old version exists the text is returned unchanged and applied is false.
// Several coordinates are rewritten with several independent calls.
//
// RewriteArchiveReference updates references to vendored archive files, such as
// name = "jaudiotagger-2.0.4", after the archive itself has been replaced.
package descriptor
