package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/arnavshah/study-planner-go/pkg/config"
)

func TestNewLogger_Level(t *testing.T) {
	log, err := NewLogger(&config.LogConfig{Level: "warn", Format: "json"})
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}
	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("Expected info to be disabled at warn level")
	}
	if !log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("Expected error to be enabled at warn level")
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(&config.LogConfig{Level: "loud", Format: "console"}); err == nil {
		t.Error("Expected an error for an unknown level")
	}
}
