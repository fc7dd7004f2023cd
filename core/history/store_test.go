package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"dependency-manager/core/database"
	"dependency-manager/core/maven"
	"dependency-manager/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func setupSQLite(t *testing.T) *Store {
	t.Helper()
	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "history.db"),
	})
	require.NoError(t, err)
	store := NewStore(db)
	require.NoError(t, store.Migrate())
	return store
}

func sampleResult(id string, started time.Time) *reconcile.Result {
	lib := maven.Coordinate{Group: "com.example", Artifact: "lib"}
	foo := maven.Coordinate{Group: "com.example", Artifact: "foo"}
	return &reconcile.Result{
		ID: id,
		Items: []reconcile.Item{
			{Coordinate: lib, Source: reconcile.SourceDescriptor, Current: "1.0.0", Latest: "1.1.0",
				Classification: reconcile.StateStale, State: reconcile.StateEdited},
			{Coordinate: foo, Source: reconcile.SourceDescriptor, Current: "2.0",
				Classification: reconcile.StateQueryFailed, State: reconcile.StateQueryFailed,
				Failure: reconcile.FailureNotFound, Message: "no results"},
		},
		Skipped: []reconcile.Skip{
			{Coordinate: maven.Coordinate{Group: "net.sf.json-lib", Artifact: "json-lib"}, Classifier: "jdk15",
				Failure: reconcile.FailureNotFound, Message: "archive not found"},
		},
		Summary:          reconcile.Summary{Total: 2, Updated: 1, QueryFailed: 1, Skipped: 1},
		DescriptorBackup: "gradle/backups/build.gradle.kts.20260304_050607",
		RecoveryScript:   "recover-dependencies.sh",
		Started:          started,
		Finished:         started.Add(time.Second),
	}
}

func TestFromResult(t *testing.T) {
	started := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	pass := FromResult(sampleResult("p1", started))

	assert.Equal(t, "p1", pass.ID)
	assert.Equal(t, 1, pass.Updated)
	assert.Equal(t, 1, pass.Skipped)
	require.Len(t, pass.Entries, 3)
	assert.Equal(t, Entry{
		Coordinate:     "com.example:lib",
		Source:         "descriptor",
		FromVersion:    "1.0.0",
		ToVersion:      "1.1.0",
		Classification: "stale",
		State:          "edited",
	}, pass.Entries[0])
	assert.Equal(t, "not_found", pass.Entries[1].Failure)
	assert.Equal(t, StateSkipped, pass.Entries[2].State)
	assert.Equal(t, "jdk15", pass.Entries[2].Classifier)
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := setupSQLite(t)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, store.Record(ctx, sampleResult("older", base)))
	require.NoError(t, store.Record(ctx, sampleResult("newer", base.Add(time.Minute))))

	passes, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, passes, 2)
	assert.Equal(t, "newer", passes[0].ID)
	assert.Equal(t, "older", passes[1].ID)
	assert.Empty(t, passes[0].Entries)

	limited, err := store.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	pass, err := store.Get(ctx, "older")
	require.NoError(t, err)
	assert.WithinDuration(t, base, pass.Started, time.Second)
	assert.Equal(t, "recover-dependencies.sh", pass.RecoveryScript)
	require.Len(t, pass.Entries, 3)
	assert.Equal(t, "com.example:lib", pass.Entries[0].Coordinate)
	assert.Equal(t, StateSkipped, pass.Entries[2].State)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrPassNotFound)
}

func TestRecordDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := setupSQLite(t)

	require.NoError(t, store.Record(ctx, sampleResult("dup", time.Now())))
	assert.Error(t, store.Record(ctx, sampleResult("dup", time.Now())))
}

func TestStoreErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("List Query Error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT \\* FROM `reconcile_passes` ORDER BY started DESC LIMIT").
			WillReturnError(assert.AnError)

		_, err := NewStore(db).List(ctx, 5)
		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Get Not Found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT \\* FROM `reconcile_passes` WHERE id = \\?").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := NewStore(db).Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrPassNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Get Query Error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT \\* FROM `reconcile_passes`").WillReturnError(assert.AnError)

		_, err := NewStore(db).Get(ctx, "p1")
		assert.ErrorIs(t, err, assert.AnError)
		assert.NotErrorIs(t, err, ErrPassNotFound)
	})
}
