package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"info":    zapcore.InfoLevel,
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
	}

	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_Production(t *testing.T) {
	log := New("warn", false)
	if log == nil {
		t.Fatal("Expected logger, got nil")
	}

	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("Info level must be disabled for a warn logger")
	}
	if !log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("Error level must be enabled for a warn logger")
	}
}

func TestNew_Development(t *testing.T) {
	log := New("debug", true)

	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Debug level must be enabled")
	}
}
