package backup

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"dependency-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Mirror uploads backup artifacts to object storage.
type Mirror struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewMirror creates a mirror writing to bucket under prefix.
func NewMirror(client storage.Client, bucket, prefix string, logger *zap.Logger) *Mirror {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mirror{client: client, bucket: bucket, prefix: prefix, logger: logger}
}

// ObjectName returns the key a file is uploaded under for a pass.
func (m *Mirror) ObjectName(passID, file string) string {
	return path.Join(m.prefix, passID, filepath.Base(file))
}

// Upload stores each file under <prefix>/<passID>/, creating the bucket when missing.
// It returns the object names written.
func (m *Mirror) Upload(ctx context.Context, passID string, files []string) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", m.bucket, err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", m.bucket, err)
		}
	}

	var uploaded []string
	for _, f := range files {
		name := m.ObjectName(passID, f)
		if err := m.put(ctx, f, name); err != nil {
			return uploaded, err
		}
		m.logger.Debug("Backup mirrored", zap.String("file", f), zap.String("object", name))
		uploaded = append(uploaded, name)
	}
	return uploaded, nil
}

func (m *Mirror) put(ctx context.Context, file, name string) error {
	//nolint:gosec // G304: backup paths are produced by this pass
	fh, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", file, err)
	}

	_, err = m.client.PutObject(ctx, m.bucket, name, fh, info.Size(), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return nil
}
