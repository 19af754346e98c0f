package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"chalk/internal/modules/assistant/domain"
	"chalk/internal/modules/assistant/dto"
	assistantout "chalk/internal/modules/assistant/port/out"
	apperrors "chalk/internal/platform/errors"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type AssistantService struct {
	store   assistantout.ManifestStore
	host    assistantout.Host
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewAssistantService spaces Ask calls at least minInterval apart. A zero
// interval disables throttling.
func NewAssistantService(store assistantout.ManifestStore, host assistantout.Host, minInterval time.Duration, logger *zap.Logger) *AssistantService {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantService{store: store, host: host, limiter: rate.NewLimiter(limit, 1), logger: logger}
}

func (s *AssistantService) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.PluginInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Capabilities: caps})
	}
	return out, nil
}

func (s *AssistantService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.BinaryReachable = fileExists(m.Binary)
		if result.BinaryReachable {
			result.ChecksumValid = checksumMatches(m.Binary, m.SHA256) == nil
		}
		switch {
		case !result.BinaryReachable:
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		case !result.ChecksumValid:
			result.Error = "checksum mismatch"
		case m.Enabled && s.host != nil:
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *AssistantService) Ask(ctx context.Context, input dto.AskInput) (dto.AskOutput, error) {
	if strings.TrimSpace(input.Plugin) == "" {
		return dto.AskOutput{}, apperrors.ErrNoAssistant
	}
	question := domain.Question{Text: strings.TrimSpace(input.Question), LessonID: input.LessonID, LessonTitle: input.LessonTitle}
	if err := question.Validate(); err != nil {
		return dto.AskOutput{}, fmt.Errorf("%v: %w", err, apperrors.ErrInvalidInput)
	}
	manifest, err := s.getRunnableManifest(ctx, input.Plugin)
	if err != nil {
		return dto.AskOutput{}, err
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return dto.AskOutput{}, fmt.Errorf("%w: %s", domain.ErrPluginTimeout, input.Plugin)
	}
	answer, err := s.host.Answer(ctx, manifest, question)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			err = fmt.Errorf("%w: %s", domain.ErrPluginTimeout, input.Plugin)
		}
		s.logger.Warn("assistant answer failed", zap.String("plugin", input.Plugin), zap.Error(err))
		return dto.AskOutput{}, err
	}
	s.logger.Debug("assistant answered",
		zap.String("plugin", input.Plugin),
		zap.String("lesson_id", input.LessonID),
		zap.Strings("terms", answer.Terms),
	)
	return dto.AskOutput{Plugin: manifest.Name, Answer: answer.Text, Terms: answer.Terms}, nil
}

func (s *AssistantService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate plugin name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func (s *AssistantService) getRunnableManifest(ctx context.Context, pluginName string) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	for _, manifest := range manifests {
		if manifest.Name != pluginName {
			continue
		}
		if !manifest.Enabled {
			return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrPluginDisabled, pluginName)
		}
		if !manifest.HasCapability(domain.CapabilityAnswer) {
			return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrCapabilityMissing, domain.CapabilityAnswer)
		}
		if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
			return domain.Manifest{}, err
		}
		return manifest, nil
	}
	return domain.Manifest{}, fmt.Errorf("%w: %q", domain.ErrPluginNotFound, pluginName)
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
