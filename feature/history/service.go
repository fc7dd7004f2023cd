package history

import (
	"context"
	"errors"
	"time"

	historystore "dependency-manager/core/history"
	"dependency-manager/core/reconcile"

	"go.uber.org/zap"
)

// ErrHistoryDisabled means no history database is configured.
var ErrHistoryDisabled = errors.New("history is disabled")

// Service reads pass history and builds dry-run plans.
type Service struct {
	store   *historystore.Store
	spec    *reconcile.Spec
	planTTL time.Duration
	logger  *zap.Logger
}

// NewService creates a history service. store may be nil when history is disabled.
func NewService(store *historystore.Store, spec *reconcile.Spec, planTTL time.Duration, logger *zap.Logger) *Service {
	return &Service{
		store:   store,
		spec:    spec,
		planTTL: planTTL,
		logger:  logger,
	}
}

// List returns recent passes.
func (s *Service) List(ctx context.Context, limit int) ([]historystore.Pass, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	return s.store.List(ctx, limit)
}

// Get returns one pass with entries.
func (s *Service) Get(ctx context.Context, id string) (*historystore.Pass, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	return s.store.Get(ctx, id)
}

// Plan returns the dry-run plan, rebuilding it when refresh is set.
func (s *Service) Plan(ctx context.Context, refresh bool) (*reconcile.Plan, error) {
	if refresh {
		reconcile.InvalidateCache(s.spec)
	}
	return reconcile.GetOrBuildPlan(ctx, s.spec, s.planTTL)
}
