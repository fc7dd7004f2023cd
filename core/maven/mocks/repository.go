package mocks

import (
	"context"

	"dependency-manager/core/maven"

	"github.com/stretchr/testify/mock"
)

// Repository is a mock implementation of the maven client surface used by the
// reconcile engine and the archive library.
type Repository struct {
	mock.Mock
}

func (m *Repository) LatestVersion(ctx context.Context, coord maven.Coordinate) (string, error) {
	args := m.Called(ctx, coord)
	return args.String(0), args.Error(1)
}

func (m *Repository) Download(ctx context.Context, coord maven.Coordinate, version, classifier, dest string, progress maven.Progress) (int64, error) {
	args := m.Called(ctx, coord, version, classifier, dest, progress)
	if fn, ok := args.Get(0).(func(string) int64); ok {
		return fn(dest), args.Error(1)
	}
	return args.Get(0).(int64), args.Error(1)
}
