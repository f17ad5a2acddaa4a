package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	if Logger == nil {
		t.Fatal("Logger is nil after Init")
	}
	Warn("first record", "key", "value")

	logFile := filepath.Join(configDir, "logs", "jagruk.log")
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "first record") {
		t.Errorf("log file = %q, want it to contain the record", data)
	}
}

func TestUse_Levels(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		wantDebug bool
	}{
		{name: "normal mode drops debug", debug: false, wantDebug: false},
		{name: "debug mode keeps debug", debug: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Use(&buf, tt.debug)
			t.Cleanup(func() { Logger = nil })

			Debug("debug record")
			Warn("warn record", "kind", "InvalidStructure")

			out := buf.String()
			if got := strings.Contains(out, "debug record"); got != tt.wantDebug {
				t.Errorf("debug record present = %v, want %v", got, tt.wantDebug)
			}
			if !strings.Contains(out, "warn record") || !strings.Contains(out, "InvalidStructure") {
				t.Errorf("output = %q, want warn record with key/value", out)
			}
			if !strings.Contains(out, "jagruk") {
				t.Errorf("output = %q, want prefix jagruk", out)
			}
		})
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
