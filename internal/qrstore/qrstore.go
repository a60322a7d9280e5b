// Package qrstore manages the per-batch QR image files: one PNG per
// batch, named <batch>_qr.png, regenerated in place.
package qrstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// ErrNotFound reports that no QR image exists for the batch. Callers
// surface it differently from a filesystem failure.
var ErrNotFound = errors.New("qr image not found")

const fileSuffix = "_qr.png"

// Store is a filesystem store of QR images rooted at a single directory.
type Store struct {
	dir string
}

// New creates the store, making the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create qr directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Path returns the image path for a batch.
func (s *Store) Path(batch string) string {
	return filepath.Join(s.dir, batch+fileSuffix)
}

// Generate renders url into the batch's PNG, overwriting any prior image.
func (s *Store) Generate(batch, url string) error {
	if err := qrcode.WriteFile(url, qrcode.Medium, 256, s.Path(batch)); err != nil {
		return fmt.Errorf("failed to write qr image for batch %s: %w", batch, err)
	}
	return nil
}

// Exists reports whether a QR image is present for the batch.
func (s *Store) Exists(batch string) bool {
	_, err := os.Stat(s.Path(batch))
	return err == nil
}

// Delete removes the batch's image. Absence is ErrNotFound, anything
// else is a filesystem failure.
func (s *Store) Delete(batch string) error {
	err := os.Remove(s.Path(batch))
	if err == nil {
		return nil
	}
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to delete qr image for batch %s: %w", batch, err)
}

// List returns the batch identifiers that have an image, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read qr directory: %w", err)
	}

	var batches []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileSuffix) {
			continue
		}
		batches = append(batches, strings.TrimSuffix(e.Name(), fileSuffix))
	}
	sort.Strings(batches)
	return batches, nil
}

// DeleteAll removes every QR image in the store.
func (s *Store) DeleteAll() error {
	batches, err := s.List()
	if err != nil {
		return err
	}
	for _, b := range batches {
		if err := s.Delete(b); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	return nil
}
