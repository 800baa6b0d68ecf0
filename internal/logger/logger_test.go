package logger

import (
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_IsNop(t *testing.T) {
	l := New()
	if l.Log == nil {
		t.Fatal("New returned nil zap logger")
	}
	if l.Log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("expected no-op logger before Init")
	}
}

func TestInit_Levels(t *testing.T) {
	tests := []struct {
		level        string
		enabled      zapcore.Level
		disabled     zapcore.Level
		checkDisable bool
	}{
		{level: "Info", enabled: zapcore.InfoLevel, disabled: zapcore.DebugLevel, checkDisable: true},
		{level: "debug", enabled: zapcore.DebugLevel},
		{level: "WARN", enabled: zapcore.WarnLevel, disabled: zapcore.InfoLevel, checkDisable: true},
		{level: "error", enabled: zapcore.ErrorLevel, disabled: zapcore.WarnLevel, checkDisable: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New()
			if err := l.Init(tt.level); err != nil {
				t.Fatalf("Init(%q) returned error: %v", tt.level, err)
			}
			if !l.Log.Core().Enabled(tt.enabled) {
				t.Errorf("level %v should be enabled for %q", tt.enabled, tt.level)
			}
			if tt.checkDisable && l.Log.Core().Enabled(tt.disabled) {
				t.Errorf("level %v should be disabled for %q", tt.disabled, tt.level)
			}
		})
	}
}

func TestInit_InvalidLevel(t *testing.T) {
	l := New()
	if err := l.Init("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if l.Log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger must stay no-op after failed Init")
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	if err != nil {
		t.Fatalf("ParseLevel(WARN) error: %v", err)
	}
	if lvl.Level() != zapcore.WarnLevel {
		t.Errorf("level = %v; want warn", lvl.Level())
	}

	if _, err := ParseLevel("verbose"); err == nil || !strings.Contains(err.Error(), `"verbose"`) {
		t.Errorf("got %v; want error naming the level", err)
	}
}
