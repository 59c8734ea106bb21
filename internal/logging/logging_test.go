package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "springsim.log")
	log, err := New("debug", path)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Debug("bob released", zap.Float64("theta", 0.25))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "bob released") {
		t.Errorf("log file missing entry: %q", data)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New("chatty", ""); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "springsim.log")
	log, err := New("warn", path)
	if err != nil {
		t.Fatal(err)
	}
	log.Info("hidden")
	log.Warn("shown")
	_ = log.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Errorf("unexpected log contents: %q", data)
	}
}

func TestForTerminalWithoutFile(t *testing.T) {
	log, err := ForTerminal("debug", "")
	if err != nil {
		t.Fatal(err)
	}
	if log.Core().Enabled(zap.ErrorLevel) {
		t.Error("terminal logger without a file should discard everything")
	}
}
