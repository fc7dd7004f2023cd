package reconcile

import (
	"errors"

	"dependency-manager/core/buildtool"
	"dependency-manager/core/descriptor"
	"dependency-manager/core/library"
	"dependency-manager/core/maven"
)

// FailureKind classifies why a dependency did not reach a clean terminal state.
type FailureKind string

const (
	FailureNetwork               FailureKind = "network_failure"
	FailureNotFound              FailureKind = "not_found"
	FailureParse                 FailureKind = "parse_failure"
	FailureIntegrity             FailureKind = "integrity_failure"
	FailureDeclarationNotMatched FailureKind = "declaration_not_matched"
	FailureBuildValidation       FailureKind = "build_validation_failure"
)

// Classify maps an error from any layer to its FailureKind. A nil error has no kind.
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, buildtool.ErrValidation):
		return FailureBuildValidation
	case errors.Is(err, library.ErrIntegrity):
		return FailureIntegrity
	case errors.Is(err, descriptor.ErrNotMatched):
		return FailureDeclarationNotMatched
	case errors.Is(err, maven.ErrNotFound), errors.Is(err, library.ErrArchiveMissing):
		return FailureNotFound
	case errors.Is(err, maven.ErrParse), errors.Is(err, library.ErrFilename):
		return FailureParse
	default:
		return FailureNetwork
	}
}
