package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.APIBaseURL)
	assert.Empty(t, cfg.VoiceID)
	assert.NotEmpty(t, cfg.DraftPath)
}

func TestLoadFromWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "voicefirst.yml"), []byte(
		"api_base_url: http://example.test/api\nvoice_id: narrator\ndraft_path: /tmp/my-draft.yml\n",
	), 0644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/api", cfg.APIBaseURL)
	assert.Equal(t, "narrator", cfg.VoiceID)
	assert.Equal(t, "/tmp/my-draft.yml", cfg.DraftPath)
}

func TestEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("VOICEFIRST_API_BASE_URL", "http://override.test/api")
	t.Setenv("VOICEFIRST_VOICE_ID", "baritone")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://override.test/api", cfg.APIBaseURL)
	assert.Equal(t, "baritone", cfg.VoiceID)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "voicefirst.yml"), []byte("{: ["), 0644))
	chdir(t, dir)

	_, err := Load()
	assert.Error(t, err)
}
