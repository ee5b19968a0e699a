package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openmined/drivemirror/internal/utils"
)

var (
	home, _                = os.UserHomeDir()
	DefaultConfigDir       = filepath.Join(home, ".drivemirror")
	DefaultConfigPath      = filepath.Join(DefaultConfigDir, "config.json")
	DefaultCredentialsPath = filepath.Join(DefaultConfigDir, "credentials.json")
	DefaultTokenPath       = filepath.Join(DefaultConfigDir, "token.json")
	DefaultLogFilePath     = filepath.Join(DefaultConfigDir, "logs", "drivemirror.log")
	DefaultSourcePath      = "PC dalībniekiem"
	DefaultTargetDrive     = "PC info dalībniekiem"
)

var (
	ErrNoCredentials = errors.New("config: credentials path missing")
	ErrNoTokenPath   = errors.New("config: token path missing")
	ErrNoSourcePath  = errors.New("config: source path missing")
	ErrNoTarget      = errors.New("config: target drive or target path required")
)

type Config struct {
	CredentialsPath string `json:"credentials_path"`
	TokenPath       string `json:"token_path"`
	SourcePath      string `json:"source_path"`
	TargetDrive     string `json:"target_drive"`
	TargetPath      string `json:"target_path,omitempty"`
	LogFile         string `json:"log_file,omitempty"`
	DebugHTTP       bool   `json:"-"`
	Path            string `json:"-"`
}

// Validate checks required fields and turns file paths into absolute ones.
func (c *Config) Validate() error {
	if c.CredentialsPath == "" {
		return ErrNoCredentials
	}
	if c.TokenPath == "" {
		return ErrNoTokenPath
	}
	if len(c.SourceComponents()) == 0 {
		return ErrNoSourcePath
	}
	if c.TargetDrive == "" && len(c.TargetComponents()) == 0 {
		return ErrNoTarget
	}

	var err error
	if c.CredentialsPath, err = utils.ResolvePath(c.CredentialsPath); err != nil {
		return fmt.Errorf("credentials path: %w", err)
	}
	if c.TokenPath, err = utils.ResolvePath(c.TokenPath); err != nil {
		return fmt.Errorf("token path: %w", err)
	}
	if c.Path != "" {
		if c.Path, err = utils.ResolvePath(c.Path); err != nil {
			return fmt.Errorf("config path: %w", err)
		}
	}
	if c.LogFile != "" {
		if c.LogFile, err = utils.ResolvePath(c.LogFile); err != nil {
			return fmt.Errorf("log file: %w", err)
		}
	}

	return nil
}

// SourceComponents splits SourcePath into folder names.
func (c *Config) SourceComponents() []string {
	return SplitPath(c.SourcePath)
}

// TargetComponents splits TargetPath into folder names.
func (c *Config) TargetComponents() []string {
	return SplitPath(c.TargetPath)
}

// LockPath is the file that guards against concurrent runs with the same token.
func (c *Config) LockPath() string {
	return c.TokenPath + ".lock"
}

func (c *Config) Save() error {
	if c.Path == "" {
		return errors.New("config: path missing")
	}
	if err := utils.EnsureParent(c.Path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.Path, data, 0o644)
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config parse '%s': %w", path, err)
	}
	cfg.Path = path

	return &cfg, nil
}

// SplitPath turns "a/b/c" into its components. Empty components are dropped, so "", "/" and
// "//" all mean the root itself. Components are kept verbatim since names match exactly.
func SplitPath(p string) []string {
	var parts []string
	for _, part := range strings.Split(p, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
