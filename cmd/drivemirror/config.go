package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/openmined/drivemirror/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "DRIVEMIRROR"

// viper key -> flag name
var flagBindings = map[string]string{
	"credentials_path": "credentials",
	"token_path":       "token",
	"log_file":         "log-file",
	"debug_http":       "debug-http",
	"source_path":      "source",
	"target_drive":     "target-drive",
	"target_path":      "target",
}

// resolveConfigPath determines which config file path to use, honoring (in order):
// 1) An explicitly set --config flag
// 2) DRIVEMIRROR_CONFIG_PATH environment variable
// 3) The default path
func resolveConfigPath(cmd *cobra.Command) string {
	if cfgFlag := cmd.Flag("config"); cfgFlag != nil && cfgFlag.Changed {
		return cfgFlag.Value.String()
	}

	if envPath := os.Getenv(envPrefix + "_CONFIG_PATH"); envPath != "" {
		return envPath
	}

	return config.DefaultConfigPath
}

// loadConfig merges the config file, environment and flags, in increasing precedence. A missing
// config file is not an error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	configPath := resolveConfigPath(cmd)

	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		enoent := errors.Is(err, os.ErrNotExist)
		_, ok := err.(viper.ConfigFileNotFoundError)
		if !enoent && !ok {
			return nil, fmt.Errorf("config read '%s': %w", configPath, err)
		}
	}

	for key, name := range flagBindings {
		if f := cmd.Flag(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("credentials_path", config.DefaultCredentialsPath)
	v.SetDefault("token_path", config.DefaultTokenPath)
	v.SetDefault("log_file", config.DefaultLogFilePath)
	v.SetDefault("source_path", config.DefaultSourcePath)
	v.SetDefault("target_drive", config.DefaultTargetDrive)

	return &config.Config{
		Path:            configPath,
		CredentialsPath: v.GetString("credentials_path"),
		TokenPath:       v.GetString("token_path"),
		LogFile:         v.GetString("log_file"),
		DebugHTTP:       v.GetBool("debug_http"),
		SourcePath:      v.GetString("source_path"),
		TargetDrive:     v.GetString("target_drive"),
		TargetPath:      v.GetString("target_path"),
	}, nil
}

func loadValidConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
