// Package collateral manages the uploaded product leaflets: at most one
// PDF and one JPEG per product type, named by the type.
package collateral

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound reports that the product type has no stored files.
var ErrNotFound = errors.New("no collateral files found")

// Store holds leaflet PDFs and product images in two directories.
type Store struct {
	pdfDir  string
	jpegDir string
}

// Entry describes the stored collateral for one product type.
type Entry struct {
	ProductType string
	HasPDF      bool
	HasImage    bool
}

// New creates the store, making both directories if needed.
func New(pdfDir, jpegDir string) (*Store, error) {
	for _, dir := range []string{pdfDir, jpegDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create collateral directory: %w", err)
		}
	}
	return &Store{pdfDir: pdfDir, jpegDir: jpegDir}, nil
}

// PDFPath returns the leaflet path for a product type.
func (s *Store) PDFPath(productType string) string {
	return filepath.Join(s.pdfDir, productType+".pdf")
}

// JPEGPath returns the image path for a product type.
func (s *Store) JPEGPath(productType string) string {
	return filepath.Join(s.jpegDir, productType+".jpeg")
}

// SavePDF writes the leaflet for a product type and returns its path.
func (s *Store) SavePDF(productType string, r io.Reader) (string, error) {
	return save(s.PDFPath(productType), r)
}

// SaveJPEG writes the image for a product type and returns its path.
func (s *Store) SaveJPEG(productType string, r io.Reader) (string, error) {
	return save(s.JPEGPath(productType), r)
}

func save(path string, r io.Reader) (string, error) {
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Remove deletes the given paths, used to back out a rejected upload.
func (s *Store) Remove(paths ...string) {
	for _, p := range paths {
		if p != "" {
			os.Remove(p)
		}
	}
}

// Delete removes the stored files for a product type and reports which
// kinds were deleted ("PDF", "JPEG"). ErrNotFound when neither exists.
func (s *Store) Delete(productType string) ([]string, error) {
	var deleted []string

	if err := os.Remove(s.JPEGPath(productType)); err == nil {
		deleted = append(deleted, "JPEG")
	} else if !os.IsNotExist(err) {
		return deleted, fmt.Errorf("failed to delete image: %w", err)
	}

	if err := os.Remove(s.PDFPath(productType)); err == nil {
		deleted = append(deleted, "PDF")
	} else if !os.IsNotExist(err) {
		return deleted, fmt.Errorf("failed to delete leaflet: %w", err)
	}

	if len(deleted) == 0 {
		return nil, ErrNotFound
	}
	return deleted, nil
}

// List returns the merged collateral inventory sorted by product type.
func (s *Store) List() ([]Entry, error) {
	pdfs, err := names(s.pdfDir, ".pdf")
	if err != nil {
		return nil, err
	}
	images, err := names(s.jpegDir, ".jpeg")
	if err != nil {
		return nil, err
	}

	types := make(map[string]*Entry)
	for _, name := range pdfs {
		types[name] = &Entry{ProductType: name, HasPDF: true}
	}
	for _, name := range images {
		if e, ok := types[name]; ok {
			e.HasImage = true
		} else {
			types[name] = &Entry{ProductType: name, HasImage: true}
		}
	}

	entries := make([]Entry, 0, len(types))
	for _, e := range types {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ProductType < entries[j].ProductType
	})
	return entries, nil
}

func names(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), ext))
	}
	return out, nil
}
