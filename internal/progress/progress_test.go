package progress

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "progress.txt"))

	for _, n := range []int{0, 1, 42, 120} {
		if err := store.Save(n); err != nil {
			t.Fatalf("Save(%d): %v", n, err)
		}
		if got := store.Load(); got != n {
			t.Errorf("Load() after Save(%d) = %d", n, got)
		}
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	if got := store.Load(); got != 0 {
		t.Errorf("Load() on missing file = %d, want 0", got)
	}
}

func TestStore_LoadCorruptFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"non-numeric", "not a number"},
		{"empty", ""},
		{"float", "3.7"},
		{"negative", "-2"},
		{"trailing garbage", "5x"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "progress.txt")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if got := NewStore(path).Load(); got != 0 {
				t.Errorf("Load() with content %q = %d, want 0", tc.content, got)
			}
		})
	}
}

func TestStore_LoadTrimsWhitespace(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "progress.txt")
	if err := os.WriteFile(path, []byte("  17\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := NewStore(path).Load(); got != 17 {
		t.Errorf("Load() = %d, want 17", got)
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "progress.txt")
	store := NewStore(path)

	if err := store.Save(3); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(4); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(data)); got != "4" {
		t.Errorf("checkpoint file content = %q, want \"4\"", got)
	}
}

func TestStore_SaveRejectsNegative(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "progress.txt"))
	if err := store.Save(-1); err == nil {
		t.Error("Save(-1) succeeded, want error")
	}
}

func TestStore_SaveCreatesParentDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "progress.txt")
	store := NewStore(path)
	if err := store.Save(7); err != nil {
		t.Fatalf("Save into missing dir: %v", err)
	}
	if got := store.Load(); got != 7 {
		t.Errorf("Load() = %d, want 7", got)
	}
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "progress.txt"))
	if err := store.Save(9); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "progress.txt" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contains %v, want only progress.txt", names)
	}
}
