package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	// Keep the process environment from leaking into file-based tests.
	t.Setenv("CHANHUB_API_KEY", "")
	t.Setenv("CHANHUB_API_URL", "")
	t.Setenv("CHANHUB_USER_ID", "")
	return dir
}

func TestSaveConfigCreatesDirectories(t *testing.T) {
	useTempHome(t)

	cfg := Config{
		APIKey: "test-key",
	}

	err := cfg.Save()
	require.NoError(t, err)

	// Verify file exists and has correct permissions
	path := Path()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadConfigNonExistent(t *testing.T) {
	useTempHome(t)

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSaveLoadRoundtripWithAllFields(t *testing.T) {
	useTempHome(t)

	original := Config{
		APIKey:   "ch_verylongkeystring12345",
		UserID:   42,
		Username: "testuser",
		APIURL:   "http://api.internal:8080",
	}

	err := original.Save()
	require.NoError(t, err)

	loaded, err := Load()
	require.NoError(t, err)

	assert.Equal(t, original.APIKey, loaded.APIKey)
	assert.Equal(t, original.UserID, loaded.UserID)
	assert.Equal(t, original.Username, loaded.Username)
	assert.Equal(t, original.APIURL, loaded.APIURL)
}

func TestSaveConfigOverwritesExisting(t *testing.T) {
	useTempHome(t)

	// First save
	cfg1 := Config{APIKey: "key1"}
	err := cfg1.Save()
	require.NoError(t, err)

	// Overwrite
	cfg2 := Config{APIKey: "key2"}
	err = cfg2.Save()
	require.NoError(t, err)

	// Verify second config is loaded
	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "key2", loaded.APIKey)
}

func TestLoadConfigEmptyFile(t *testing.T) {
	dir := useTempHome(t)

	// Create .chanhub dir and empty config
	cfgDir := filepath.Join(dir, ".chanhub")
	os.MkdirAll(cfgDir, 0700)
	path := filepath.Join(cfgDir, "config")

	err := os.WriteFile(path, []byte(""), 0600)
	require.NoError(t, err)

	_, err = Load()
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := useTempHome(t)

	cfgDir := filepath.Join(dir, ".chanhub")
	os.MkdirAll(cfgDir, 0700)
	path := filepath.Join(cfgDir, "config")

	err := os.WriteFile(path, []byte("invalid: yaml: content:"), 0600)
	require.NoError(t, err)

	_, err = Load()
	assert.Error(t, err)
}

func TestSaveConfigWithEmptyAPIKey(t *testing.T) {
	useTempHome(t)

	cfg := Config{
		APIKey: "", // Empty key should fail on load
	}

	err := cfg.Save()
	require.NoError(t, err)

	_, err = Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
}

func TestConfigPermissionsStrictlyEnforced(t *testing.T) {
	useTempHome(t)

	cfg := Config{APIKey: "secret"}
	err := cfg.Save()
	require.NoError(t, err)

	// Try to make it world-readable
	path := Path()
	err = os.Chmod(path, 0644)
	require.NoError(t, err)

	// Load should fail with incorrect permissions
	_, err = Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "permissions")
}

func TestEnvOverridesFileValues(t *testing.T) {
	useTempHome(t)

	cfg := Config{APIKey: "file-key", UserID: 1, Username: "filed"}
	require.NoError(t, cfg.Save())

	t.Setenv("CHANHUB_API_KEY", "env-key")
	t.Setenv("CHANHUB_API_URL", "http://override:9090")
	t.Setenv("CHANHUB_USER_ID", "77")

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env-key", loaded.APIKey)
	assert.Equal(t, "http://override:9090", loaded.APIURL)
	assert.Equal(t, 77, loaded.UserID)
	assert.Equal(t, "filed", loaded.Username)
}

func TestEnvOnlyConfigWithoutFile(t *testing.T) {
	useTempHome(t)

	t.Setenv("CHANHUB_API_KEY", "env-only-key")

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env-only-key", loaded.APIKey)
}

func TestEnvUserIDIgnoresGarbage(t *testing.T) {
	useTempHome(t)

	cfg := Config{APIKey: "file-key", UserID: 5}
	require.NoError(t, cfg.Save())

	t.Setenv("CHANHUB_USER_ID", "not-a-number")

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.UserID)
}

func TestPathReturnsCorrectLocation(t *testing.T) {
	path := Path()
	assert.Contains(t, path, ".chanhub")
	assert.Contains(t, path, "config")
}
