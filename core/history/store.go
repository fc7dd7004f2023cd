package history

import (
	"context"
	"errors"
	"fmt"

	"dependency-manager/core/reconcile"

	"gorm.io/gorm"
)

// ErrPassNotFound means no pass has the requested id.
var ErrPassNotFound = errors.New("pass not found")

// DefaultLimit is used by List when limit is not positive.
const DefaultLimit = 20

// Store reads and writes pass history.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store over db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the history tables.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&Pass{}, &Entry{}); err != nil {
		return fmt.Errorf("failed to migrate history tables: %w", err)
	}
	return nil
}

// Record stores a pass result with its entries.
func (s *Store) Record(ctx context.Context, result *reconcile.Result) error {
	pass := FromResult(result)
	if err := s.db.WithContext(ctx).Create(&pass).Error; err != nil {
		return fmt.Errorf("failed to record pass %s: %w", pass.ID, err)
	}
	return nil
}

// List returns the most recent passes without entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Pass, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	var passes []Pass
	err := s.db.WithContext(ctx).
		Order("started DESC").
		Limit(limit).
		Find(&passes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list passes: %w", err)
	}
	return passes, nil
}

// Get returns a pass with its entries.
func (s *Store) Get(ctx context.Context, id string) (*Pass, error) {
	var pass Pass
	err := s.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("id = ?", id).
		First(&pass).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s: %w", id, ErrPassNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load pass %s: %w", id, err)
	}
	return &pass, nil
}

// FromResult converts a pass result into its stored form.
func FromResult(r *reconcile.Result) Pass {
	pass := Pass{
		ID:               r.ID,
		DryRun:           r.DryRun,
		Started:          r.Started,
		Finished:         r.Finished,
		Total:            r.Summary.Total,
		Updated:          r.Summary.Updated,
		Warned:           r.Summary.Warned,
		QueryFailed:      r.Summary.QueryFailed,
		Current:          r.Summary.Current,
		Ahead:            r.Summary.Ahead,
		Pending:          r.Summary.Pending,
		Skipped:          r.Summary.Skipped,
		DescriptorBackup: r.DescriptorBackup,
		RecoveryScript:   r.RecoveryScript,
	}

	for _, it := range r.Items {
		pass.Entries = append(pass.Entries, Entry{
			Coordinate:     it.Coordinate.String(),
			Source:         string(it.Source),
			Classifier:     it.Classifier,
			FromVersion:    it.Current,
			ToVersion:      it.Latest,
			Classification: string(it.Classification),
			State:          string(it.State),
			Failure:        string(it.Failure),
			Message:        it.Message,
		})
	}
	for _, sk := range r.Skipped {
		pass.Entries = append(pass.Entries, Entry{
			Coordinate: sk.Coordinate.String(),
			Source:     string(reconcile.SourceArchive),
			Classifier: sk.Classifier,
			State:      StateSkipped,
			Failure:    string(sk.Failure),
			Message:    sk.Message,
		})
	}
	return pass
}

var _ reconcile.Recorder = (*Store)(nil)
