package reconcile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"dependency-manager/core/backup"
	"dependency-manager/core/library"
	"dependency-manager/core/maven"
	"dependency-manager/core/maven/mocks"
	"dependency-manager/core/project"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeValidator struct {
	cleaned   int
	validated int
	err       error
}

func (f *fakeValidator) Clean(context.Context) { f.cleaned++ }

func (f *fakeValidator) Validate(context.Context) error {
	f.validated++
	return f.err
}

type fakeRecorder struct {
	results []*Result
}

func (f *fakeRecorder) Record(_ context.Context, r *Result) error {
	f.results = append(f.results, r)
	return nil
}

type fakeMirror struct {
	files []string
}

func (f *fakeMirror) Upload(_ context.Context, passID string, files []string) ([]string, error) {
	f.files = append(f.files, files...)
	names := make([]string, len(files))
	for i, file := range files {
		names[i] = passID + "/" + filepath.Base(file)
	}
	return names, nil
}

func coord(s string) maven.Coordinate {
	c, err := maven.ParseCoordinate(s)
	if err != nil {
		panic(err)
	}
	return c
}

func jar(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("META-INF/MANIFEST.MF")
	require.NoError(t, err)
	_, err = f.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func write(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// newSpec lays out a project in a temp dir with the given descriptor text.
func newSpec(t *testing.T, repo *mocks.Repository, text string, tracked []string, archives []project.Archive) *Spec {
	t.Helper()
	root := t.TempDir()
	descriptorPath := filepath.Join(root, "build.gradle.kts")
	write(t, descriptorPath, []byte(text))

	coords := make([]maven.Coordinate, len(tracked))
	for i, s := range tracked {
		coords[i] = coord(s)
	}

	return &Spec{
		Descriptor:     descriptorPath,
		Tracked:        coords,
		Archives:       archives,
		RecoveryScript: filepath.Join(root, "recover-dependencies.sh"),
		StagingDir:     root,
		Concurrency:    2,
		Repository:     repo,
		Library:        library.New([]string{filepath.Join(root, "libs")}, root, repo, zap.NewNop()),
		Backups:        backup.NewManager(filepath.Join(root, "gradle", "backups"), zap.NewNop()),
		Logger:         zap.NewNop(),
	}
}

func libDir(spec *Spec) string {
	return filepath.Join(filepath.Dir(spec.Descriptor), "libs")
}
