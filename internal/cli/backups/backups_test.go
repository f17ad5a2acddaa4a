package backups

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/jagruk/internal/backup"
	"github.com/julianstephens/jagruk/internal/cli/clitest"
	"github.com/julianstephens/jagruk/internal/models"
	"github.com/julianstephens/jagruk/internal/state"
)

func TestBackupCreateListRestore(t *testing.T) {
	ctx, out := clitest.New(t, "y\n")
	tr, _ := ctx.Tracker()
	name := "Before"
	tr.UpdateProfile(state.ProfilePatch{Name: &name})

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create: %v", err)
	}
	backups, err := ctx.Backups().List()
	if err != nil || len(backups) != 1 {
		t.Fatalf("List() = %v, %v; want one backup", backups, err)
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out.String(), filepath.Base(backups[0].Path)) {
		t.Errorf("list output:\n%s", out.String())
	}

	after := "After"
	tr.UpdateProfile(state.ProfilePatch{Name: &after})

	out.Reset()
	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(backups[0].Path)}).Run(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got := tr.Snapshot().Profile.Name; got != "Before" {
		t.Errorf("name after restore = %q, want Before", got)
	}
	if !strings.Contains(out.String(), "restored successfully") {
		t.Errorf("restore output:\n%s", out.String())
	}
	if backups, _ := ctx.Backups().List(); len(backups) != 2 {
		t.Errorf("backups after restore = %d, want original plus safety copy", len(backups))
	}
}

func TestBackupRestoreCancelled(t *testing.T) {
	ctx, out := clitest.New(t, "n\n")
	tr, _ := ctx.Tracker()
	path, err := tr.Backup(ctx.Backups())
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	name := "Kept"
	tr.UpdateProfile(state.ProfilePatch{Name: &name})

	if err := (&BackupRestoreCmd{BackupFile: path}).Run(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("output:\n%s", out.String())
	}
	if got := tr.Snapshot().Profile.Name; got != "Kept" {
		t.Errorf("name = %q, cancelled restore must not change state", got)
	}
	if err := (&BackupRestoreCmd{BackupFile: "missing.json", Yes: true}).Run(ctx); err == nil {
		t.Error("restoring a missing backup should fail")
	}
}

func TestExportImport(t *testing.T) {
	ctx, _ := clitest.New(t, "")
	tr, _ := ctx.Tracker()
	tr.AddTransaction(models.Transaction{Amount: 42, Category: "Food", Note: "dosa, chutney"})
	tr.AddGoal(models.Goal{Title: "Learn Go", Type: models.GoalCareer})

	dir := t.TempDir()
	if err := (&ExportCmd{Format: "json", Output: dir}).Run(ctx); err != nil {
		t.Fatalf("export json: %v", err)
	}
	if err := (&ExportCmd{Format: "csv", Output: dir}).Run(ctx); err != nil {
		t.Fatalf("export csv: %v", err)
	}
	jsonPath := filepath.Join(dir, "jagruk_backup_2024-03-15.json")
	csvData, err := os.ReadFile(filepath.Join(dir, "jagruk_ledger_2024-03-15.csv"))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !strings.Contains(string(csvData), `"dosa, chutney"`) {
		t.Errorf("csv = %s", csvData)
	}

	other, _ := clitest.New(t, "")
	if err := (&ImportCmd{File: jsonPath, Yes: true}).Run(other); err != nil {
		t.Fatalf("import: %v", err)
	}
	ot, _ := other.Tracker()
	s := ot.Snapshot()
	if len(s.Transactions) != 1 || len(s.Goals) != 1 || s.Goals[0].Title != "Learn Go" {
		t.Errorf("imported state = %+v", s)
	}
	if !s.Profile.IsOnboarded {
		t.Error("imported profile should be onboarded")
	}
}

func TestImportRejects(t *testing.T) {
	ctx, _ := clitest.New(t, "y\n")
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		want    error
	}{
		{"wrong extension", "backup.txt", `{"profile":{}}`, backup.ErrUnsupportedFileType},
		{"not json", "backup.json", `{profile`, backup.ErrUnparseable},
		{"no profile", "backup.json", `{"entries":{}}`, backup.ErrInvalidStructure},
		{"array", "backup.json", `[1,2]`, backup.ErrInvalidStructure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			err := (&ImportCmd{File: path, Yes: true}).Run(ctx)
			if !errors.Is(err, tt.want) {
				t.Errorf("import error = %v, want %v", err, tt.want)
			}
		})
	}

	tr, _ := ctx.Tracker()
	if tr.Snapshot().Profile.IsOnboarded {
		t.Error("rejected imports must leave the state untouched")
	}
}

func TestExportToStdout(t *testing.T) {
	ctx, out := clitest.New(t, "")
	if err := (&ExportCmd{Format: "json", Output: "-"}).Run(ctx); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(out.String(), "{") || !strings.Contains(out.String(), `"profile"`) {
		t.Errorf("stdout export = %s", out.String())
	}
}
