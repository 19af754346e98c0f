package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	assistantout "chalk/internal/modules/assistant/adapter/out"
	"chalk/internal/modules/assistant/domain"
)

func TestGRPCHostIntegrationGlossaryPlugin(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the assistant plugin")
	}
	binPath, checksum := buildAssistantPlugin(t)
	manifest := domain.Manifest{
		Name:         "glossary",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       checksum,
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityAnswer},
	}

	host := assistantout.NewGRPCHost()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := host.CheckLifecycle(ctx, manifest); err != nil {
		t.Fatalf("check lifecycle: %v", err)
	}
	metadata, err := host.GetMetadata(ctx, manifest)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if metadata.Name != "glossary" || len(metadata.Capabilities) != 1 || metadata.Capabilities[0] != domain.CapabilityAnswer {
		t.Fatalf("unexpected metadata: %+v", metadata)
	}

	answer, err := host.Answer(ctx, manifest, domain.Question{Text: "what does limt mean", LessonTitle: "1. What is a Limit?"})
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !strings.Contains(strings.ToLower(answer.Text), "limit") || len(answer.Terms) == 0 {
		t.Fatalf("unexpected answer: %+v", answer)
	}
}

func buildAssistantPlugin(t *testing.T) (string, string) {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "assistant-plugin")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/assistant")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build assistant plugin: %v\n%s", err, string(out))
	}
	payload, err := os.ReadFile(binPath)
	if err != nil {
		t.Fatalf("read built plugin: %v", err)
	}
	hash := sha256.Sum256(payload)
	return binPath, hex.EncodeToString(hash[:])
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
