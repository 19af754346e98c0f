package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

type Capability string

const CapabilityAnswer Capability = "answer"

var (
	ErrPluginDisabled    = errors.New("assistant plugin is disabled")
	ErrPluginNotFound    = errors.New("assistant plugin not found")
	ErrChecksumMismatch  = errors.New("assistant plugin checksum mismatch")
	ErrCapabilityMissing = errors.New("assistant plugin capability missing")
	ErrPluginTimeout     = errors.New("assistant plugin timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Binary       string       `json:"binary"`
	SHA256       string       `json:"sha256"`
	Enabled      bool         `json:"enabled"`
	Capabilities []Capability `json:"capabilities"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("plugin binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("plugin sha256 must be lowercase 64-char hex")
	}
	if len(m.Capabilities) == 0 {
		return fmt.Errorf("plugin capabilities are required")
	}
	seen := map[Capability]struct{}{}
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if _, ok := seen[capability]; ok {
			return fmt.Errorf("duplicate capability: %s", capability)
		}
		seen[capability] = struct{}{}
	}
	return nil
}

func (c Capability) Validate() error {
	if c != CapabilityAnswer {
		return fmt.Errorf("unknown capability: %s", c)
	}
	return nil
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

// Question is what the learner asked, with the lesson it was asked from.
type Question struct {
	Text        string
	LessonID    string
	LessonTitle string
}

func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("question text is required")
	}
	return nil
}

type Answer struct {
	Text  string
	Terms []string
}
