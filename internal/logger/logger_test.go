package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/abhisek/ababa/internal/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ababa.log")
	cfg := &config.Config{
		Env: config.EnvProduction,
		Log: config.Log{Path: path, Level: "warn"},
	}

	l, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	l.Warn("explanation failed")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "explanation failed") {
		t.Fatalf("log file missing entry: %s", data)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	cfg := &config.Config{Log: config.Log{Path: "-", Level: "loud"}}
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestDevelopmentLoggerPanicsOnDPanic(t *testing.T) {
	cfg := &config.Config{Env: "development", Log: config.Log{Path: "-", Level: "debug"}}
	l, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("development logger should panic on DPanic")
		}
	}()
	l.DPanic("invalid call")
}
