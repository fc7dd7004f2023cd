package maven

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Progress receives the number of bytes written so far and the expected total.
// total is -1 when the server did not announce a length.
type Progress func(written, total int64)

// ArtifactURL returns the download location of an archive.
func (c *Client) ArtifactURL(coord Coordinate, version, classifier string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s",
		c.cfg.RepoURL, coord.Path(), coord.Artifact, version, coord.FileName(version, classifier))
}

// Download streams the archive for coord at version into dest and returns the number of
// bytes written. dest is removed when the transfer fails.
func (c *Client) Download(ctx context.Context, coord Coordinate, version, classifier, dest string, progress Progress) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.DownloadTimeout)
	defer cancel()

	src := c.ArtifactURL(coord, version, classifier)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return 0, fmt.Errorf("download %s: %w: %w", src, ErrNetwork, err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download %s: %w: %w", src, ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return 0, fmt.Errorf("download %s: %w", src, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return 0, fmt.Errorf("download %s: %w: HTTP %d", src, ErrNetwork, resp.StatusCode)
	}

	//nolint:gosec // G304: dest is built from configured staging dir and repository filename
	out, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", dest, err)
	}

	counter := &progressWriter{total: resp.ContentLength, report: progress}
	written, copyErr := io.Copy(out, io.TeeReader(resp.Body, counter))
	closeErr := out.Close()
	if copyErr != nil {
		_ = os.Remove(dest)
		return 0, fmt.Errorf("download %s: %w: %w", src, ErrNetwork, copyErr)
	}
	if closeErr != nil {
		_ = os.Remove(dest)
		return 0, fmt.Errorf("write %s: %w", dest, closeErr)
	}
	return written, nil
}

type progressWriter struct {
	written int64
	total   int64
	report  Progress
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	if p.report != nil {
		p.report(p.written, p.total)
	}
	return len(b), nil
}
