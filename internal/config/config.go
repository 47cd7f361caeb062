package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/quizbox/internal/errorbank"
)

// FileName is the config file looked up inside the data dir.
const FileName = "config.yaml"

// HomeEnv overrides the data dir.
const HomeEnv = "QUIZBOX_HOME"

// ShuffleMode controls whether questions are shuffled before a quiz.
type ShuffleMode string

const (
	ShuffleAsk    ShuffleMode = "ask"
	ShuffleAlways ShuffleMode = "always"
	ShuffleNever  ShuffleMode = "never"
)

// Config holds user settings. Relative paths are resolved against DataDir
// by Normalize.
type Config struct {
	DataDir string `yaml:"-"`

	RegistryFile      string      `yaml:"registry_file"`
	ErrorsDir         string      `yaml:"errors_dir"`
	ErrorBankCapacity int         `yaml:"error_bank_capacity"`
	Shuffle           ShuffleMode `yaml:"shuffle"`
	HistoryDB         string      `yaml:"history_db"`
	LogFile           string      `yaml:"log_file"`
}

// Default returns the settings used when no config file exists.
func Default(dataDir string) Config {
	return Config{
		DataDir:           dataDir,
		RegistryFile:      "quizPath.txt",
		ErrorsDir:         "Errors",
		ErrorBankCapacity: errorbank.DefaultCapacity,
		Shuffle:           ShuffleAsk,
		HistoryDB:         "quizbox.db",
		LogFile:           "quizbox.log",
	}
}

// Load reads dataDir/config.yaml over the defaults, then normalizes and
// validates. A missing file is not an error.
func Load(dataDir string) (Config, error) {
	cfg := Default(dataDir)

	data, err := os.ReadFile(filepath.Join(dataDir, FileName))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := parse(data, &cfg); err != nil {
			return Config{}, err
		}
	}

	Normalize(&cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parse(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// Normalize trims values and resolves relative paths against DataDir.
func Normalize(cfg *Config) {
	cfg.Shuffle = ShuffleMode(strings.ToLower(strings.TrimSpace(string(cfg.Shuffle))))
	if cfg.Shuffle == "" {
		cfg.Shuffle = ShuffleAsk
	}
	for _, p := range []*string{&cfg.RegistryFile, &cfg.ErrorsDir, &cfg.HistoryDB, &cfg.LogFile} {
		*p = strings.TrimSpace(*p)
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(cfg.DataDir, *p)
		}
	}
}

// Validate reports the first invalid setting.
func Validate(cfg Config) error {
	switch {
	case cfg.RegistryFile == "":
		return errors.New("config: registry_file is required")
	case cfg.ErrorsDir == "":
		return errors.New("config: errors_dir is required")
	case cfg.HistoryDB == "":
		return errors.New("config: history_db is required")
	case cfg.ErrorBankCapacity < 1:
		return fmt.Errorf("config: error_bank_capacity must be at least 1, got %d", cfg.ErrorBankCapacity)
	}
	switch cfg.Shuffle {
	case ShuffleAsk, ShuffleAlways, ShuffleNever:
	default:
		return fmt.Errorf("config: shuffle must be ask, always or never, got %q", cfg.Shuffle)
	}
	return nil
}

// DefaultDataDir resolves the data directory in priority order:
// 1. QUIZBOX_HOME environment variable
// 2. $XDG_DATA_HOME/quizbox
// 3. ~/.local/share/quizbox
func DefaultDataDir() (string, error) {
	if p := os.Getenv(HomeEnv); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "quizbox")
	return p, EnsureDir(p)
}

// EnsureDir creates dir if it doesn't exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
