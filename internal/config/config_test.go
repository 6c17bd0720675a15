package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	valid := &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data:   DataConfig{BasePath: "/tmp/inkwell"},
		Auth:   AuthConfig{TokenDuration: 168 * time.Hour},
	}
	require.NoError(t, valid.Validate())

	badEnv := *valid
	badEnv.App.Environment = "prod"
	assert.Error(t, badEnv.Validate())

	badLevel := *valid
	badLevel.Logger.Level = "verbose"
	assert.Error(t, badLevel.Validate())

	badDuration := *valid
	badDuration.Auth.TokenDuration = 0
	assert.Error(t, badDuration.Validate())
}

func TestGetConfigValuePrecedence(t *testing.T) {
	t.Setenv("INKWELL_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "INKWELL_TEST_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "INKWELL_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "INKWELL_TEST_MISSING", "default"))
}

func TestGetIntConfigValue(t *testing.T) {
	t.Setenv("INKWELL_TEST_INT", "42")

	assert.Equal(t, 42, getIntConfigValue("", "INKWELL_TEST_INT", 7))
	assert.Equal(t, 7, getIntConfigValue("", "INKWELL_TEST_INT_MISSING", 7))
	assert.Equal(t, 9, getIntConfigValue("9", "INKWELL_TEST_INT", 7))

	t.Setenv("INKWELL_TEST_INT", "not-a-number")
	assert.Equal(t, 7, getIntConfigValue("", "INKWELL_TEST_INT", 7))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nINKWELL_ENV_FILE_KEY=hello\nQUOTED=\"world\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Cleanup(func() {
		os.Unsetenv("INKWELL_ENV_FILE_KEY")
		os.Unsetenv("QUOTED")
	})

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "hello", os.Getenv("INKWELL_ENV_FILE_KEY"))
	assert.Equal(t, "world", os.Getenv("QUOTED"))
}

func TestLoadEnvFileDoesNotOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("INKWELL_PRESET=file\n"), 0o600))

	t.Setenv("INKWELL_PRESET", "real")

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "real", os.Getenv("INKWELL_PRESET"))
}

func TestExpandPath(t *testing.T) {
	got, err := expandPath("", "/default/path")
	require.NoError(t, err)
	assert.Equal(t, "/default/path", got)

	got, err = expandPath("/already/abs", "")
	require.NoError(t, err)
	assert.Equal(t, "/already/abs", got)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	got, err = expandPath("~/data", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data"), got)
}
