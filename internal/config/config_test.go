package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(tmp string) *Config {
	return &Config{
		CredentialsPath: filepath.Join(tmp, "credentials.json"),
		TokenPath:       filepath.Join(tmp, "token.json"),
		SourcePath:      "PC dalībniekiem",
		TargetDrive:     "PC info dalībniekiem",
		Path:            filepath.Join(tmp, "config.json"),
	}
}

func TestConfig_Validate(t *testing.T) {
	tmp := t.TempDir()

	t.Run("valid config passes", func(t *testing.T) {
		require.NoError(t, validConfig(tmp).Validate())
	})

	t.Run("relative paths become absolute", func(t *testing.T) {
		cfg := validConfig(tmp)
		cfg.CredentialsPath = "credentials.json"
		cfg.TokenPath = "./state/token.json"
		cfg.LogFile = "out.log"
		require.NoError(t, cfg.Validate())
		assert.True(t, filepath.IsAbs(cfg.CredentialsPath))
		assert.True(t, filepath.IsAbs(cfg.TokenPath))
		assert.True(t, filepath.IsAbs(cfg.LogFile))
	})

	t.Run("missing credentials", func(t *testing.T) {
		cfg := validConfig(tmp)
		cfg.CredentialsPath = ""
		assert.ErrorIs(t, cfg.Validate(), ErrNoCredentials)
	})

	t.Run("missing token path", func(t *testing.T) {
		cfg := validConfig(tmp)
		cfg.TokenPath = ""
		assert.ErrorIs(t, cfg.Validate(), ErrNoTokenPath)
	})

	t.Run("source path of only slashes", func(t *testing.T) {
		cfg := validConfig(tmp)
		cfg.SourcePath = " / "
		assert.ErrorIs(t, cfg.Validate(), ErrNoSourcePath)
	})

	t.Run("no target", func(t *testing.T) {
		cfg := validConfig(tmp)
		cfg.TargetDrive = ""
		cfg.TargetPath = ""
		assert.ErrorIs(t, cfg.Validate(), ErrNoTarget)
	})

	t.Run("target path without drive", func(t *testing.T) {
		cfg := validConfig(tmp)
		cfg.TargetDrive = ""
		cfg.TargetPath = "PC Google My Maps"
		assert.NoError(t, cfg.Validate())
	})
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"/", nil},
		{"a", []string{"a"}},
		{"/a/b/", []string{"a", "b"}},
		{"a//b", []string{"a", "b"}},
		{"Reports /2024", []string{"Reports ", "2024"}},
		{" Projects / 2024 ", []string{" Projects ", " 2024 "}},
		{"it's/here", []string{"it's", "here"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitPath(tt.in))
		})
	}
}

func TestConfig_SaveAndLoad_Roundtrip(t *testing.T) {
	tmp := t.TempDir()
	cfg := validConfig(tmp)
	cfg.Path = filepath.Join(tmp, "nested", "config.json")
	cfg.TargetPath = "Inbox/2024"
	cfg.DebugHTTP = true // should not persist

	require.NoError(t, cfg.Save())

	loaded, err := LoadConfig(cfg.Path)
	require.NoError(t, err)
	assert.Equal(t, cfg.CredentialsPath, loaded.CredentialsPath)
	assert.Equal(t, cfg.TokenPath, loaded.TokenPath)
	assert.Equal(t, cfg.SourcePath, loaded.SourcePath)
	assert.Equal(t, cfg.TargetDrive, loaded.TargetDrive)
	assert.Equal(t, []string{"Inbox", "2024"}, loaded.TargetComponents())
	assert.Equal(t, cfg.Path, loaded.Path)
	assert.False(t, loaded.DebugHTTP)
}

func TestConfig_SaveWritesEmptyTargetDrive(t *testing.T) {
	tmp := t.TempDir()
	cfg := validConfig(tmp)
	cfg.Path = filepath.Join(tmp, "config.json")
	cfg.TargetDrive = ""
	cfg.TargetPath = "Backup"

	require.NoError(t, cfg.Save())

	data, err := os.ReadFile(cfg.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"target_drive": ""`)
}

func TestLoadConfig_Errors(t *testing.T) {
	tmp := t.TempDir()

	_, err := LoadConfig(filepath.Join(tmp, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(tmp, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{nope"), 0o644))
	_, err = LoadConfig(bad)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config parse")
}

func TestConfig_LockPath(t *testing.T) {
	cfg := &Config{TokenPath: "/tmp/x/token.json"}
	assert.Equal(t, "/tmp/x/token.json.lock", cfg.LockPath())
}
