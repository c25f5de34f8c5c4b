package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_LoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "watermark.json"))

	id, err := store.Load()
	if err != nil {
		t.Fatalf("Expected no error for missing file, got: %v", err)
	}
	if id != "" {
		t.Errorf("Expected empty watermark on first run, got '%s'", id)
	}
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watermark.json")
	store := NewFileStore(path)

	if err := store.Save("1234567890"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	id, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if id != "1234567890" {
		t.Errorf("Expected '1234567890', got '%s'", id)
	}
}

func TestFileStore_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watermark.json")
	store := NewFileStore(path)

	if err := store.Save("100"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save("200"); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	id, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if id != "200" {
		t.Errorf("Expected '200', got '%s'", id)
	}

	// The temp file must not linger next to the real one
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the watermark file in the directory, found %d entries", len(entries))
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watermark.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	store := NewFileStore(path)
	if _, err := store.Load(); err == nil {
		t.Error("Expected error for corrupt watermark file, got nil")
	}
}
