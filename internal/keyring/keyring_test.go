package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/jagruk/internal/constants"
)

func TestConnectionStringLifecycle(t *testing.T) {
	gokeyring.MockInit()

	const connStr = "postgres://tracker@localhost:5432/jagruk?sslmode=disable"

	if err := SetConnectionString("  " + connStr + "\n"); err != nil {
		t.Fatalf("SetConnectionString() error = %v", err)
	}
	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() error = %v", err)
	}
	if got != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", got, connStr)
	}

	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() error = %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() after delete error = %v, want ErrNotFound", err)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteConnectionString() error = %v, want ErrNotFound", err)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	for _, in := range []string{"", "   "} {
		if err := SetConnectionString(in); err == nil {
			t.Errorf("SetConnectionString(%q) error = nil, want error", in)
		}
	}
}

func TestLookupConnectionString(t *testing.T) {
	tests := []struct {
		name       string
		env        string
		stored     string
		want       string
		wantSource Source
		wantErr    error
	}{
		{
			name:       "environment wins",
			env:        "postgres://env@db/jagruk",
			stored:     "postgres://stored@db/jagruk",
			want:       "postgres://env@db/jagruk",
			wantSource: SourceEnv,
		},
		{
			name:       "keyring fallback",
			stored:     "postgres://stored@db/jagruk",
			want:       "postgres://stored@db/jagruk",
			wantSource: SourceKeyring,
		},
		{
			name:    "nothing configured",
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gokeyring.MockInit()
			t.Setenv(constants.EnvDBConnection, tt.env)
			if tt.stored != "" {
				if err := SetConnectionString(tt.stored); err != nil {
					t.Fatalf("SetConnectionString() error = %v", err)
				}
			}

			got, src, err := LookupConnectionString()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LookupConnectionString() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LookupConnectionString() error = %v", err)
			}
			if got != tt.want || src != tt.wantSource {
				t.Errorf("LookupConnectionString() = (%q, %q), want (%q, %q)", got, src, tt.want, tt.wantSource)
			}
		})
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false, want true in mock mode")
	}
}
