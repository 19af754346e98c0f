package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chalk/internal/platform/logging"
)

func TestNewWritesJSONToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "chalk.log")
	logger, err := logging.New(path, "info")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("lesson opened")
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), `"msg":"lesson opened"`) {
		t.Fatalf("expected json entry, got %s", string(raw))
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()
	if _, err := logging.New(filepath.Join(t.TempDir(), "x.log"), "loud"); err == nil {
		t.Fatalf("expected level error")
	}
}

func TestOrNop(t *testing.T) {
	t.Parallel()
	if logging.OrNop(nil) == nil {
		t.Fatalf("expected nop logger")
	}
}
