package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultRevealInterval    = 120 * time.Millisecond
	DefaultContinueKey       = "space"
	DefaultAssistantInterval = 750 * time.Millisecond
	DefaultGraphingURL       = "https://www.desmos.com/calculator"
)

type Config struct {
	VaultPath  string
	DBPath     string
	LogPath    string
	ConfigPath string

	Reveal    RevealConfig
	Assistant AssistantConfig
	Tools     ToolsConfig
	Log       LogConfig
}

type settings struct {
	Reveal    RevealConfig    `mapstructure:"reveal"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Tools     ToolsConfig     `mapstructure:"tools"`
	Log       LogConfig       `mapstructure:"log"`
}

type RevealConfig struct {
	Interval    time.Duration `mapstructure:"interval"`
	ContinueKey string        `mapstructure:"continue_key"`
}

type AssistantConfig struct {
	Plugin      string        `mapstructure:"plugin"`
	MinInterval time.Duration `mapstructure:"min_interval"`
}

type ToolsConfig struct {
	GraphingURL string `mapstructure:"graphing_url"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// New derives vault-relative paths and built-in defaults without reading any file.
func New(vaultPath string) (Config, error) {
	if vaultPath == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}
	stateDir := filepath.Join(vaultPath, ".chalk")
	return Config{
		VaultPath:  vaultPath,
		DBPath:     filepath.Join(stateDir, "chalk.db"),
		LogPath:    filepath.Join(stateDir, "logs", "chalk.log"),
		ConfigPath: filepath.Join(stateDir, "config.yaml"),
		Reveal:     RevealConfig{Interval: DefaultRevealInterval, ContinueKey: DefaultContinueKey},
		Assistant:  AssistantConfig{MinInterval: DefaultAssistantInterval},
		Tools:      ToolsConfig{GraphingURL: DefaultGraphingURL},
		Log:        LogConfig{Level: "info"},
	}, nil
}

// Load layers defaults, the vault config file (or configFile when set) and
// CHALK_* environment variables. A missing config file is not an error.
func Load(vaultPath, configFile string) (Config, error) {
	cfg, err := New(vaultPath)
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetDefault("reveal.interval", cfg.Reveal.Interval)
	v.SetDefault("reveal.continue_key", cfg.Reveal.ContinueKey)
	v.SetDefault("assistant.plugin", "")
	v.SetDefault("assistant.min_interval", cfg.Assistant.MinInterval)
	v.SetDefault("tools.graphing_url", cfg.Tools.GraphingURL)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.LogPath)

	v.SetConfigType("yaml")
	if configFile != "" {
		cfg.ConfigPath = configFile
	}
	v.SetConfigFile(cfg.ConfigPath)

	v.SetEnvPrefix("CHALK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil && configFile != "" {
		return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
	}

	loaded := settings{}
	if err := v.Unmarshal(&loaded); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Reveal = loaded.Reveal
	cfg.Assistant = loaded.Assistant
	cfg.Tools = loaded.Tools
	cfg.Log = loaded.Log
	if cfg.Log.File != "" {
		cfg.LogPath = cfg.Log.File
	}
	if cfg.Reveal.Interval <= 0 {
		return Config{}, fmt.Errorf("reveal.interval must be positive, got %s", cfg.Reveal.Interval)
	}
	if strings.TrimSpace(cfg.Reveal.ContinueKey) == "" {
		cfg.Reveal.ContinueKey = DefaultContinueKey
	}
	return cfg, nil
}
