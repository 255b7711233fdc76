package logging

import (
	"os"
	"strings"
	"testing"

	"devhook/internal/config"

	"github.com/sirupsen/logrus"
)

func TestConfigureWritesToLogPath(t *testing.T) {
	s := config.DefaultSettings(t.TempDir())
	s.Logging.Level = "debug"
	s.Logging.Format = "json"

	logger, err := Configure(s)
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level = %s", logger.GetLevel())
	}
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Fatalf("expected json formatter, got %T", logger.Formatter)
	}
	logger.WithField("hook", "rustfmt").Info("hello")

	data, err := os.ReadFile(s.Paths.LogPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"hook":"rustfmt"`) {
		t.Fatalf("log line missing field: %s", data)
	}
	if !strings.Contains(string(data), `"project":`) {
		t.Fatalf("log line missing project field: %s", data)
	}
}

func TestTextFormatTagsProjectWithoutColors(t *testing.T) {
	dir := t.TempDir()
	s := config.DefaultSettings(dir)

	logger, err := Configure(s)
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	logger.WithField("project", "override").Info("kept")
	logger.Info("plain")

	data, err := os.ReadFile(s.Paths.LogPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("text log should not contain color codes: %q", out)
	}
	if !strings.Contains(out, "project=override") {
		t.Fatalf("explicit field should win: %s", out)
	}
	if !strings.Contains(out, "project="+dir) {
		t.Fatalf("default project field missing: %s", out)
	}
}

func TestConfigureIgnoresBadLevel(t *testing.T) {
	s := config.DefaultSettings(t.TempDir())
	s.Logging.Level = "chatty"
	logger, err := Configure(s)
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	if logger.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected default info level, got %s", logger.GetLevel())
	}
}
