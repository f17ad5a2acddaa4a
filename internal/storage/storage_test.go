package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/jagruk/internal/storage"
	"github.com/julianstephens/jagruk/internal/storage/storagetest"
)

func TestMemoryStore(t *testing.T) {
	storagetest.Run(t, storage.NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	s := storage.NewFileStore(filepath.Join(t.TempDir(), "nested", "jagruk.json"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	storagetest.Run(t, s)
}

func TestFileStore_LoadBeforeInit(t *testing.T) {
	s := storage.NewFileStore(filepath.Join(t.TempDir(), "jagruk.json"))
	if err := s.Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("Load() error = %v, want ErrNotInitialized", err)
	}
	if _, err := s.Get("k"); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("Get() error = %v, want ErrNotInitialized", err)
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jagruk.json")
	first := storage.NewFileStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := first.Set("jagruk_theme", []byte("light")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Init on an existing file keeps its contents.
	second := storage.NewFileStore(path)
	if err := second.Init(); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	got, err := second.Get("jagruk_theme")
	if err != nil || string(got) != "light" {
		t.Errorf("Get() = %q, %v; want light", got, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %v, want 0600", perm)
	}
	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(path), ".jagruk-*.tmp"))
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jagruk.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := storage.NewFileStore(path).Load(); err == nil {
		t.Error("Load() of a corrupt file should fail")
	}
}

func TestMemoryStore_FailWrites(t *testing.T) {
	s := storage.NewMemoryStore()
	s.FailWrites(errors.New("quota exceeded"))
	if err := s.Set("k", []byte("v")); err == nil {
		t.Error("Set() error = nil, want simulated failure")
	}
}
