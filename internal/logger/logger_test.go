package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sciquiz.log")

	log, closer := Setup(path, "info")
	log.Info().Str("event", "started").Msg("hello")
	if err := closer(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"event":"started"`) {
		t.Errorf("log file missing entry: %q", data)
	}
}

func TestSetupLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sciquiz.log")

	log, closer := Setup(path, "warn")
	log.Info().Msg("suppressed")
	log.Warn().Msg("kept")
	if err := closer(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(data), "suppressed") {
		t.Error("info entry should be filtered at warn level")
	}
	if !strings.Contains(string(data), "kept") {
		t.Error("warn entry missing")
	}
}

func TestSetupEmptyPathDisabled(t *testing.T) {
	log, closer := Setup("", "info")
	log.Info().Msg("discarded")
	if err := closer(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestSetupBadLevelDefaultsToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sciquiz.log")

	log, closer := Setup(path, "verbose")
	log.Info().Msg("visible")
	log.Debug().Msg("hidden")
	if err := closer(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "visible") {
		t.Error("info entry missing at default level")
	}
	if strings.Contains(string(data), "hidden") {
		t.Error("debug entry should be filtered at default level")
	}
}
