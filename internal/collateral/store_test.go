package collateral

import (
	"errors"
	"strings"
	"testing"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := New(dir+"/pdf", dir+"/jpeg")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return s
}

func TestSaveAndList(t *testing.T) {
	s := newStore(t)

	if _, err := s.SavePDF("widget-std", strings.NewReader("%PDF-1.4 fake")); err != nil {
		t.Fatalf("Failed to save pdf: %v", err)
	}
	if _, err := s.SaveJPEG("widget-std", strings.NewReader("jpeg-bytes")); err != nil {
		t.Fatalf("Failed to save jpeg: %v", err)
	}
	if _, err := s.SavePDF("gadget", strings.NewReader("%PDF-1.4 fake")); err != nil {
		t.Fatalf("Failed to save pdf: %v", err)
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	// Sorted by product type
	if entries[0].ProductType != "gadget" || entries[1].ProductType != "widget-std" {
		t.Errorf("Unexpected order: %+v", entries)
	}
	if !entries[0].HasPDF || entries[0].HasImage {
		t.Errorf("gadget should have PDF only: %+v", entries[0])
	}
	if !entries[1].HasPDF || !entries[1].HasImage {
		t.Errorf("widget-std should have both: %+v", entries[1])
	}
}

func TestDeleteOutcomes(t *testing.T) {
	s := newStore(t)

	if _, err := s.SavePDF("widget-std", strings.NewReader("pdf")); err != nil {
		t.Fatalf("Failed to save pdf: %v", err)
	}
	if _, err := s.SaveJPEG("widget-std", strings.NewReader("jpeg")); err != nil {
		t.Fatalf("Failed to save jpeg: %v", err)
	}

	deleted, err := s.Delete("widget-std")
	if err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if len(deleted) != 2 {
		t.Errorf("Expected both kinds deleted, got %v", deleted)
	}

	if _, err := s.Delete("widget-std"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestRemoveBacksOutUpload(t *testing.T) {
	s := newStore(t)

	path, err := s.SavePDF("widget-std", strings.NewReader("pdf"))
	if err != nil {
		t.Fatalf("Failed to save pdf: %v", err)
	}

	s.Remove(path)

	if _, err := s.Delete("widget-std"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after Remove, got %v", err)
	}
}
