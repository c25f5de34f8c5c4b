package state

import (
	"path/filepath"
	"testing"
)

func TestSQLiteStore_FirstRun(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"), "someuser")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	id, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if id != "" {
		t.Errorf("Expected empty watermark on first run, got '%s'", id)
	}
}

func TestSQLiteStore_SaveLoadRoundTrip(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"), "someuser")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	if err := store.Save("100"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save("200"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	id, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if id != "200" {
		t.Errorf("Expected '200', got '%s'", id)
	}
}

func TestSQLiteStore_PerAccountIsolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	first, err := NewSQLiteStore(path, "alpha")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := first.Save("111"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	first.Close()

	second, err := NewSQLiteStore(path, "beta")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer second.Close()

	id, err := second.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if id != "" {
		t.Errorf("Watermarks must be isolated per account, got '%s'", id)
	}
}
