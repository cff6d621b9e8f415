// ABOUTME: Tests for the storage facade
// ABOUTME: Verifies open paths, store wiring, and the default DB location
package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenInMemory(t *testing.T) {
	store, err := OpenInMemory(0)
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	// All stores should be wired and usable
	users, err := store.Users.List()
	if err != nil {
		t.Fatalf("Users.List() error = %v", err)
	}
	if len(users) != 0 {
		t.Errorf("fresh database has %d users", len(users))
	}

	drugs, err := store.Drugs.List()
	if err != nil {
		t.Fatalf("Drugs.List() error = %v", err)
	}
	if len(drugs) != 0 {
		t.Errorf("fresh database has %d drugs", len(drugs))
	}
}

func TestOpenWithPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "nelsonref.db")

	store, err := Open(dbPath, 0)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
	if store.Path() != dbPath {
		t.Errorf("Path() = %q, want %q", store.Path(), dbPath)
	}
}

func TestDefaultDBPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-test")

	got := DefaultDBPath()
	want := filepath.Join("/tmp/xdg-test", "nelsonref", "nelsonref.db")
	if got != want {
		t.Errorf("DefaultDBPath() = %q, want %q", got, want)
	}
	if !strings.HasSuffix(got, "nelsonref.db") {
		t.Errorf("DefaultDBPath() = %q, want a nelsonref.db path", got)
	}
}
