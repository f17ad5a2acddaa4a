package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/jagruk/internal/backup"
	"github.com/julianstephens/jagruk/internal/storage"
)

func rejectedImport(t *testing.T) error {
	t.Helper()
	_, err := backup.DecodeFile("report.pdf", []byte("%PDF-1.7"))
	if err == nil {
		t.Fatal("DecodeFile accepted a pdf")
	}
	return err
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      func(t *testing.T) error
		wantLead string
		wantHint string
	}{
		{
			name:     "nil",
			err:      func(*testing.T) error { return nil },
			wantLead: "",
		},
		{
			name:     "storage not initialized",
			err:      func(*testing.T) error { return fmt.Errorf("open tracker: %w", storage.ErrNotInitialized) },
			wantLead: "Error: open tracker: storage not initialized, run 'jagruk init' first",
		},
		{
			name: "unknown habit with suggestion",
			err: func(*testing.T) error {
				return WithHint(fmt.Errorf("unknown habit %q", "Gmy"), `did you mean "Gym"?`)
			},
			wantLead: `Error: unknown habit "Gmy"`,
			wantHint: `did you mean "Gym"?`,
		},
		{
			name: "rejected import",
			err: func(t *testing.T) error {
				return WithHint(rejectedImport(t), "use a .json file created with 'jagruk export'")
			},
			wantLead: "Error: " + rejectedImport(t).Error(),
			wantHint: "use a .json file created with 'jagruk export'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.wantLead
			if tt.wantHint != "" {
				want += "\n  hint: " + tt.wantHint
			}
			if got := Format(tt.err(t)); got != want {
				t.Errorf("Format() = %q, want %q", got, want)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("unknown habit %q", "Gym")
	if got != `Error: unknown habit "Gym"` {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestWithHint(t *testing.T) {
	rejected := rejectedImport(t)
	wrapped := fmt.Errorf("import: %w", WithHint(rejected, "use a .json file created with 'jagruk export'"))

	if !errors.Is(wrapped, backup.ErrUnsupportedFileType) {
		t.Error("errors.Is() = false, want the hinted import error to keep its kind")
	}
	var ie *backup.ImportError
	if !errors.As(wrapped, &ie) || ie.Kind != backup.UnsupportedFileType {
		t.Errorf("errors.As() = %v, want an UnsupportedFileType ImportError", ie)
	}
	if got := Hint(wrapped); got != "use a .json file created with 'jagruk export'" {
		t.Errorf("Hint() = %q", got)
	}
	if Hint(storage.ErrNotInitialized) != "" {
		t.Error("Hint() on a plain error should be empty")
	}
	if WithHint(nil, "ignored") != nil {
		t.Error("WithHint(nil) should be nil")
	}
}

func TestFatal_NilError(t *testing.T) {
	Fatal(nil)
}

// TestFatal re-runs the test binary so the exit can be observed.
func TestFatal(t *testing.T) {
	switch os.Getenv("JAGRUK_TEST_FATAL") {
	case "hint":
		Fatal(WithHint(storage.ErrNotInitialized, "run 'jagruk init' first"))
		return
	case "format":
		Fatalf("unknown habit %q", "Gmy")
		return
	}

	tests := []struct {
		mode string
		want []string
	}{
		{"hint", []string{"Error: storage not initialized", "  hint: run 'jagruk init' first"}},
		{"format", []string{`Error: unknown habit "Gmy"`}},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			cmd := exec.Command(os.Args[0], "-test.run=^TestFatal$")
			cmd.Env = append(os.Environ(), "JAGRUK_TEST_FATAL="+tt.mode)
			var stderr bytes.Buffer
			cmd.Stderr = &stderr

			err := cmd.Run()
			var exitErr *exec.ExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("process did not exit with an error: %v", err)
			}
			if exitErr.ExitCode() != 1 {
				t.Errorf("exit code = %d, want 1", exitErr.ExitCode())
			}
			for _, w := range tt.want {
				if !strings.Contains(stderr.String(), w) {
					t.Errorf("stderr = %q, want to contain %q", stderr.String(), w)
				}
			}
		})
	}
}
