package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/mgpai22/rsub/internal/subtitle"
)

//go:embed sample_config.toml
var sampleConfig string

var ErrConfigExists = errors.New("config file already exists")

// Config holds the defaults for a retiming run.
type Config struct {
	Encoding         string `toml:"encoding"`
	CreateBackup     bool   `toml:"create_backup"`
	UseBackupAsInput bool   `toml:"use_backup_as_input"`
	Recount          bool   `toml:"recount"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Encoding:         subtitle.DefaultEncoding,
		CreateBackup:     true,
		UseBackupAsInput: false,
		Recount:          true,
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/rsub/config.toml, falling back
// to ~/.config/rsub/config.toml.
func DefaultConfigPath() (string, error) {
	if base, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "rsub", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "rsub", "config.toml"), nil
}

// Load reads the configuration at path, or at the default location when
// path is empty. A missing default file yields the defaults; a missing
// explicit file is an error. It returns the resolved path and whether the
// file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return nil, "", false, err
		}
		path = defaultPath
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return &cfg, path, false, nil
		}
		return nil, "", false, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, "", false, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.Encoding = strings.TrimSpace(cfg.Encoding)
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, path, true, nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Encoding == "" {
		return errors.New("config: encoding must not be empty")
	}
	if _, err := subtitle.ResolveEncoding(c.Encoding); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// CreateSample writes a commented sample configuration to path. An existing
// file is never overwritten.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
		return fmt.Errorf("write sample config: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(sampleConfig); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return file.Close()
}
