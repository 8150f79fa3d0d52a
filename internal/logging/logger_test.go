package logging

import (
	"context"
	"testing"
)

func TestNewLoggerDefaults(t *testing.T) {
	logger := NewLogger(Config{})
	if logger == nil {
		t.Fatalf("expected logger, got nil")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus", ""} {
		if NewLogger(Config{Level: level}) == nil {
			t.Fatalf("expected logger for level %q", level)
		}
	}
}

func TestFromContextRoundTrip(t *testing.T) {
	logger := NewLogger(Config{Service: "test"})
	ctx := WithContext(context.Background(), logger)
	if got := FromContext(ctx, nil); got != logger {
		t.Fatalf("expected context logger back")
	}

	fallback := NewLogger(Config{})
	if got := FromContext(context.Background(), fallback); got != fallback {
		t.Fatalf("expected fallback logger")
	}
	if got := FromContext(nil, nil); got != nil {
		t.Fatalf("expected nil for nil ctx and fallback")
	}
}

func TestHelpersTolerateNilLogger(t *testing.T) {
	Debug(nil, "msg")
	Info(nil, "msg")
	Warn(nil, "msg")
	Error(nil, "msg", nil)
}
