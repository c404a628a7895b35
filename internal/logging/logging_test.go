package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" DEBUG ", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"loud", slog.LevelInfo},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := ParseLevel(c.in); got != c.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestNewHonoursLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	var buf bytes.Buffer
	log := New(&buf)
	log.Info("quiet")
	log.Warn("loud", "difficulty", "hard")
	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, "difficulty=hard") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestOpenWritesToStateDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmp)
	t.Setenv("LOG_LEVEL", "")

	log, closer, err := Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	log.Info("round started", "seed", 7)
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(tmp, "gift-tornado", "game.log"))
	if err != nil {
		t.Fatalf("game.log not created: %v", err)
	}
	if !strings.Contains(string(data), "seed=7") {
		t.Errorf("log content = %q", data)
	}
}

func TestStateDirDefaultFallback(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "")
	dir, err := StateDir()
	if err != nil {
		t.Skip("skipping: no user home directory available in test environment")
	}
	suffix := filepath.Join(".local", "state", "gift-tornado")
	if !strings.HasSuffix(dir, suffix) {
		t.Errorf("dir %q does not end with %q", dir, suffix)
	}
}
