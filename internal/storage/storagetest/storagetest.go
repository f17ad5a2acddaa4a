// Package storagetest holds the behavior every storage.BlobStore must share.
package storagetest

import (
	"errors"
	"testing"

	"github.com/julianstephens/jagruk/internal/storage"
)

// Run exercises an initialized store. The store is empty on entry.
func Run(t *testing.T, s storage.BlobStore) {
	t.Helper()

	t.Run("GetMissing", func(t *testing.T) {
		if _, err := s.Get("missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("SetGetOverwrite", func(t *testing.T) {
		if err := s.Set("jagruk_theme", []byte("light")); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if err := s.Set("jagruk_theme", []byte("dark")); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		got, err := s.Get("jagruk_theme")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(got) != "dark" {
			t.Errorf("Get() = %q, want dark", got)
		}
	})

	t.Run("BinarySafe", func(t *testing.T) {
		blob := []byte(`{"profile":{"name":"Asha é"},"entries":{}}` + "\x00\n")
		if err := s.Set("blob", blob); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		got, err := s.Get("blob")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(got) != string(blob) {
			t.Errorf("Get() = %q, want %q", got, blob)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := s.Set("gone", []byte("x")); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if err := s.Delete("gone"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if err := s.Delete("gone"); err != nil {
			t.Errorf("Delete() of an absent key error = %v, want nil", err)
		}
		if _, err := s.Get("gone"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		for _, k := range []string{"a", "b", "jagruk_journal_data"} {
			if err := s.Set(k, []byte(k)); err != nil {
				t.Fatalf("Set(%q) error = %v", k, err)
			}
		}
		if err := s.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		for _, k := range []string{"a", "b", "jagruk_journal_data", "jagruk_theme"} {
			if _, err := s.Get(k); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("Get(%q) after Clear error = %v, want ErrNotFound", k, err)
			}
		}
		if err := s.Set("after", []byte("ok")); err != nil {
			t.Errorf("Set() after Clear error = %v", err)
		}
	})

	t.Run("Location", func(t *testing.T) {
		if s.Location() == "" {
			t.Error("Location() is empty")
		}
	})
}
