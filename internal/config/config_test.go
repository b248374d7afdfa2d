package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		App: AppConfig{
			Environment: "development",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		Database: DatabaseConfig{
			Path: "/some/path/bookscout.db",
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validTestConfig()

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validTestConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"INFO", true}, // case insensitive
		{"verbose", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validTestConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_ProductionRequiresOAuth(t *testing.T) {
	cfg := validTestConfig()
	cfg.App.Environment = "production"

	err := cfg.Validate()
	require.Error(t, err)

	cfg.Auth.GoogleClientID = "client-id"
	cfg.Auth.GoogleClientSecret = "client-secret"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_EmptyDatabasePath(t *testing.T) {
	cfg := validTestConfig()
	cfg.Database.Path = ""

	err := cfg.Validate()
	assert.Error(t, err)
}

func TestIsProduction(t *testing.T) {
	cfg := validTestConfig()
	assert.False(t, cfg.IsProduction())

	cfg.App.Environment = "production"
	assert.True(t, cfg.IsProduction())
}

func TestExpandPath_Tilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/data/bookscout.db", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data", "bookscout.db"), got)
}

func TestExpandPath_EmptyUsesDefault(t *testing.T) {
	got, err := expandPath("", "/default/path.db")
	require.NoError(t, err)
	assert.Equal(t, "/default/path.db", got)
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("BOOKSCOUT_TEST_KEY", "from-env")

	// Flag wins over env.
	assert.Equal(t, "from-flag", getConfigValue("from-flag", "BOOKSCOUT_TEST_KEY", "from-default"))
	// Env wins over default.
	assert.Equal(t, "from-env", getConfigValue("", "BOOKSCOUT_TEST_KEY", "from-default"))
	// Default when nothing else set.
	assert.Equal(t, "from-default", getConfigValue("", "BOOKSCOUT_TEST_MISSING", "from-default"))
}

func TestGetBoolConfigValue(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback bool
		want     bool
	}{
		{"true", "true", false, true},
		{"upper true", "TRUE", false, true},
		{"one", "1", false, true},
		{"yes", "yes", false, true},
		{"false", "false", true, false},
		{"zero", "0", true, false},
		{"nonsense", "nonsense", true, false},
		{"unset default false", "", false, false},
		{"unset default true", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getBoolConfigValue(tt.value, "BOOKSCOUT_TEST_UNSET", tt.fallback)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nBOOKSCOUT_ENVFILE_A=hello\nBOOKSCOUT_ENVFILE_B=\"quoted\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Cleanup(func() {
		os.Unsetenv("BOOKSCOUT_ENVFILE_A")
		os.Unsetenv("BOOKSCOUT_ENVFILE_B")
	})

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "hello", os.Getenv("BOOKSCOUT_ENVFILE_A"))
	assert.Equal(t, "quoted", os.Getenv("BOOKSCOUT_ENVFILE_B"))
}

func TestLoadEnvFile_EnvTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("BOOKSCOUT_ENVFILE_C=file-value\n"), 0o600))

	t.Setenv("BOOKSCOUT_ENVFILE_C", "env-value")

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "env-value", os.Getenv("BOOKSCOUT_ENVFILE_C"))
}
