// Package version provides the total order used to decide whether a declared
// dependency is behind the repository.
//
// # Normalization
//
// A version string is reduced to the sequence of its maximal digit runs, in order.
// Everything else (dots, dashes, qualifiers such as "beta" or "RC") is discarded, so
// "2.0-beta" and "2.0" normalize identically and compare Equal. This is lossy on purpose
// and is only ever used for ordering, never for display.
//
// # Ordering
//
// The shorter sequence is right-padded with zeros ("1.2" == "1.2.0") and the first
// differing component decides. When neither input contains a digit the comparison falls
// back to plain string ordering, so any pair of inputs yields a defined result.
//
// # Usage
//
//	switch version.Compare(current, latest) {
//	case version.Less:
//	    // stale
//	case version.Greater:
//	    // ahead of the repository, report only
//	}
package version
