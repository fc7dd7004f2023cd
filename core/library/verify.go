package library

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"
)

// Verify checks that path is a readable zip container with at least one entry and that
// every entry decompresses with a matching checksum.
func Verify(path string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", path, ErrIntegrity, err)
	}
	defer r.Close()

	if len(r.File) == 0 {
		return fmt.Errorf("%s: %w: archive has no entries", path, ErrIntegrity)
	}

	for _, f := range r.File {
		if err := readEntry(f); err != nil {
			return fmt.Errorf("%s: %w: entry %s: %w", path, ErrIntegrity, f.Name, err)
		}
	}
	return nil
}

func readEntry(f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	_, err = io.Copy(io.Discard, rc)
	return err
}
