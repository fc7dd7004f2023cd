package backup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dependency-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBackupDescriptor(t *testing.T) {
	root := t.TempDir()
	descriptor := filepath.Join(root, "build.gradle.kts")
	require.NoError(t, os.WriteFile(descriptor, []byte("dependencies {}\n"), 0o644))

	m := NewManager(filepath.Join(root, "gradle", "backups"), zap.NewNop())
	m.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }

	first, err := m.BackupDescriptor(descriptor)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "gradle", "backups", "build.gradle.kts.20260304_050607"), first)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "dependencies {}\n", string(data))

	second, err := m.BackupDescriptor(descriptor)
	require.NoError(t, err)
	assert.Equal(t, first+"_1", second)
	assert.FileExists(t, first)

	_, err = m.BackupDescriptor(filepath.Join(root, "missing.kts"))
	assert.Error(t, err)
}

func TestWriteRecoveryScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "recover-dependencies.sh")

	r := Recovery{
		Descriptor:       "build.gradle.kts",
		DescriptorBackup: "gradle/backups/build.gradle.kts.20260304_050607",
		Archives: []ArchiveRestore{
			{Backup: "libs/foo-1.2.3.jar.backup", Original: "libs/foo-1.2.3.jar", Replacement: "libs/foo-1.3.0.jar"},
			{Backup: "libs/bar-2.0.jar.backup", Original: "libs/bar-2.0.jar", Replacement: "libs/bar-2.0.jar"},
		},
		Created: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
	}

	require.NoError(t, os.WriteFile(script, []byte("stale"), 0o600))
	require.NoError(t, WriteRecoveryScript(script, r))

	info, err := os.Stat(script)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	data, err := os.ReadFile(script)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "#!/bin/bash\n")
	assert.Contains(t, text, "# Generated 2026-03-04 05:06:07")
	assert.Contains(t, text, "cp 'gradle/backups/build.gradle.kts.20260304_050607' 'build.gradle.kts'")
	assert.Contains(t, text, "rm -f 'libs/foo-1.3.0.jar'")
	assert.Contains(t, text, "mv 'libs/foo-1.2.3.jar.backup' 'libs/foo-1.2.3.jar'")
	assert.Contains(t, text, "mv 'libs/bar-2.0.jar.backup' 'libs/bar-2.0.jar'")
	assert.NotContains(t, text, "rm -f 'libs/bar-2.0.jar'")
	assert.Contains(t, text, "rm -f '.'/temp_*.jar")
	assert.NotContains(t, text, "stale")
}

func TestWriteRecoveryScriptWithoutDescriptor(t *testing.T) {
	script := filepath.Join(t.TempDir(), "nested", "recover.sh")
	require.NoError(t, WriteRecoveryScript(script, Recovery{
		Archives:   []ArchiveRestore{{Backup: "a.jar.backup", Original: "a.jar", Replacement: "a2.jar"}},
		StagingDir: "staging",
	}))

	data, err := os.ReadFile(script)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "cp ")
	assert.Contains(t, string(data), "rm -f 'staging'/temp_*.jar")
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, "'plain'", shellQuote("plain"))
	assert.Equal(t, `'it'\''s'`, shellQuote("it's"))
	assert.Equal(t, "'with space'", shellQuote("with space"))
}

func TestMirrorUpload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	file := filepath.Join(dir, "build.gradle.kts.20260304_050607")
	require.NoError(t, os.WriteFile(file, []byte("abc"), 0o644))

	t.Run("Creates Bucket And Uploads", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "backups").Return(false, nil)
		client.On("MakeBucket", ctx, "backups", minio.MakeBucketOptions{}).Return(nil)
		client.On("PutObject", ctx, "backups", "passes/p1/build.gradle.kts.20260304_050607", mock.Anything, int64(3), mock.Anything).
			Return(minio.UploadInfo{}, nil)

		m := NewMirror(client, "backups", "passes", nil)
		names, err := m.Upload(ctx, "p1", []string{file})
		require.NoError(t, err)
		assert.Equal(t, []string{"passes/p1/build.gradle.kts.20260304_050607"}, names)
		client.AssertExpectations(t)
	})

	t.Run("Bucket Check Failure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "backups").Return(false, errors.New("denied"))

		m := NewMirror(client, "backups", "passes", nil)
		_, err := m.Upload(ctx, "p1", []string{file})
		assert.ErrorContains(t, err, "denied")
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Nothing To Upload", func(t *testing.T) {
		client := new(mocks.Client)
		m := NewMirror(client, "backups", "passes", nil)
		names, err := m.Upload(ctx, "p1", nil)
		assert.NoError(t, err)
		assert.Empty(t, names)
		client.AssertNotCalled(t, "BucketExists", mock.Anything, mock.Anything)
	})
}
