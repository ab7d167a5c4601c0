package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("relayout", "tables", 2)

	line := buf.String()
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(line) {
		t.Errorf("log line %q should start with an HH:MM:SS.ms timestamp", line)
	}
	if !strings.Contains(line, "relayout") || !strings.Contains(line, "tables=2") {
		t.Errorf("log line %q is missing the message or its fields", line)
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line written at info level: %q", buf.String())
	}
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("config loaded")
	if !strings.Contains(buf.String(), "config loaded") {
		t.Errorf("debug line missing after SetLogLevel(LogDebug): %q", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	p.done("Laid out " + plural(3, "table", "tables"))

	if !regexp.MustCompile(`Laid out 3 tables \(\d+(\.\d+)?m?s\)`).MatchString(buf.String()) {
		t.Errorf("progress line %q should carry the elapsed time", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("a bare context should yield the default logger")
	}

	l := newLogger(&bytes.Buffer{}, log.DebugLevel)
	if got := loggerFromContext(withLogger(context.Background(), l)); got != l {
		t.Error("loggerFromContext did not return the attached logger")
	}
}

func TestViewerLogger(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		keep  bool
	}{
		{"info is silenced", log.InfoLevel, false},
		{"debug keeps logging", log.DebugLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			viewerLogger(newLogger(&buf, tt.level)).Warn("table layout failed")
			if got := buf.Len() > 0; got != tt.keep {
				t.Errorf("wrote = %v, want %v", got, tt.keep)
			}
		})
	}
}
