package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	assistantout "chalk/internal/modules/assistant/adapter/out"
	"chalk/internal/modules/assistant/domain"
	"chalk/internal/modules/assistant/dto"
	"chalk/internal/modules/assistant/service"
	apperrors "chalk/internal/platform/errors"
)

type fakeStore struct {
	manifests []domain.Manifest
}

func (s fakeStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, nil
}

type fakeHost struct {
	asked []domain.Question
	err   error
}

func (*fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }
func (*fakeHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: "fake", Version: "1"}, nil
}
func (h *fakeHost) Answer(_ context.Context, _ domain.Manifest, q domain.Question) (domain.Answer, error) {
	h.asked = append(h.asked, q)
	if h.err != nil {
		return domain.Answer{}, h.err
	}
	return domain.Answer{Text: "answer to " + q.Text, Terms: []string{"limit"}}, nil
}

func TestAskReturnsPluginAnswer(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityAnswer})
	host := &fakeHost{}
	svc := service.NewAssistantService(fakeStore{manifests: []domain.Manifest{manifest}}, host, 0, nil)

	out, err := svc.Ask(context.Background(), dto.AskInput{Plugin: "demo", Question: "  limit  ", LessonID: "what-is-a-limit"})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if out.Answer != "answer to limit" || out.Plugin != "demo" {
		t.Fatalf("unexpected output: %+v", out)
	}
	if len(host.asked) != 1 || host.asked[0].LessonID != "what-is-a-limit" {
		t.Fatalf("unexpected host calls: %+v", host.asked)
	}
}

func TestAskWithoutPluginIsNoAssistant(t *testing.T) {
	t.Parallel()
	svc := service.NewAssistantService(fakeStore{}, &fakeHost{}, 0, nil)
	if _, err := svc.Ask(context.Background(), dto.AskInput{Question: "why"}); !errors.Is(err, apperrors.ErrNoAssistant) {
		t.Fatalf("expected ErrNoAssistant, got %v", err)
	}
}

func TestAskRejectsBlankQuestion(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityAnswer})
	svc := service.NewAssistantService(fakeStore{manifests: []domain.Manifest{manifest}}, &fakeHost{}, 0, nil)
	if _, err := svc.Ask(context.Background(), dto.AskInput{Plugin: "demo", Question: " \n"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAskRejectsDisabledUnknownAndTamperedPlugins(t *testing.T) {
	t.Parallel()
	disabled := manifestWithBinary(t, false, []domain.Capability{domain.CapabilityAnswer})
	svc := service.NewAssistantService(fakeStore{manifests: []domain.Manifest{disabled}}, &fakeHost{}, 0, nil)
	if _, err := svc.Ask(context.Background(), dto.AskInput{Plugin: "demo", Question: "q"}); !errors.Is(err, domain.ErrPluginDisabled) {
		t.Fatalf("expected ErrPluginDisabled, got %v", err)
	}
	if _, err := svc.Ask(context.Background(), dto.AskInput{Plugin: "other", Question: "q"}); !errors.Is(err, domain.ErrPluginNotFound) {
		t.Fatalf("expected ErrPluginNotFound, got %v", err)
	}

	tampered := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityAnswer})
	tampered.SHA256 = strings.Repeat("0", 64)
	svc = service.NewAssistantService(fakeStore{manifests: []domain.Manifest{tampered}}, &fakeHost{}, 0, nil)
	if _, err := svc.Ask(context.Background(), dto.AskInput{Plugin: "demo", Question: "q"}); !errors.Is(err, domain.ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestAskMapsDeadlineToTimeout(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityAnswer})
	host := &fakeHost{err: context.DeadlineExceeded}
	svc := service.NewAssistantService(fakeStore{manifests: []domain.Manifest{manifest}}, host, 0, nil)
	if _, err := svc.Ask(context.Background(), dto.AskInput{Plugin: "demo", Question: "q"}); !errors.Is(err, domain.ErrPluginTimeout) {
		t.Fatalf("expected ErrPluginTimeout, got %v", err)
	}
}

func TestAskIsThrottled(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityAnswer})
	svc := service.NewAssistantService(fakeStore{manifests: []domain.Manifest{manifest}}, &fakeHost{}, time.Hour, nil)
	if _, err := svc.Ask(context.Background(), dto.AskInput{Plugin: "demo", Question: "first"}); err != nil {
		t.Fatalf("first ask: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := svc.Ask(ctx, dto.AskInput{Plugin: "demo", Question: "second"}); !errors.Is(err, domain.ErrPluginTimeout) {
		t.Fatalf("expected throttled ask to time out, got %v", err)
	}
}

func TestDoctorDetectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	pluginsDir := filepath.Join(tmp, "plugins")
	if err := os.MkdirAll(pluginsDir, 0o755); err != nil {
		t.Fatalf("mkdir plugins: %v", err)
	}
	binPath := filepath.Join(tmp, "dummy-plugin")
	if err := os.WriteFile(binPath, []byte("not-a-real-plugin"), 0o755); err != nil {
		t.Fatalf("write plugin binary: %v", err)
	}
	manifests := []domain.Manifest{{
		Name:         "demo",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       strings.Repeat("0", 64),
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityAnswer},
	}}
	raw, _ := json.Marshal(manifests)
	if err := os.WriteFile(filepath.Join(pluginsDir, "plugins.json"), raw, 0o644); err != nil {
		t.Fatalf("write plugins.json: %v", err)
	}

	svc := service.NewAssistantService(assistantout.NewFileManifestStore(tmp), nil, 0, nil)
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 1 || results[0].ChecksumValid || results[0].Error != "checksum mismatch" {
		t.Fatalf("unexpected doctor results: %+v", results)
	}
}

func TestListRejectsDuplicateNames(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityAnswer})
	svc := service.NewAssistantService(fakeStore{manifests: []domain.Manifest{manifest, manifest}}, &fakeHost{}, 0, nil)
	if _, err := svc.List(context.Background()); err == nil {
		t.Fatalf("expected duplicate name error")
	}
}

func manifestWithBinary(t *testing.T, enabled bool, capabilities []domain.Capability) domain.Manifest {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "assistant-bin")
	if err := os.WriteFile(binPath, []byte("binary"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	hash := sha256.Sum256([]byte("binary"))
	return domain.Manifest{
		Name:         "demo",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       hex.EncodeToString(hash[:]),
		Enabled:      enabled,
		Capabilities: capabilities,
	}
}
