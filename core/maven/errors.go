package maven

import "errors"

var (
	// ErrNotFound means the repository has no record for the coordinate.
	ErrNotFound = errors.New("not found in repository")
	// ErrNetwork means the repository was unreachable, timed out or answered with an error status.
	ErrNetwork = errors.New("repository unreachable")
	// ErrParse means the repository answered with a body that does not have the expected shape.
	ErrParse = errors.New("unexpected repository response")
)
