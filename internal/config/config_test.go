package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "upstream:\n  base_url: https://cms.example.com/\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3100, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "https://cms.example.com", cfg.Upstream.BaseURL, "trailing slash is stripped")
	assert.Equal(t, defaultCategories, cfg.Categories)
}

func TestLoadRequiresUpstreamURL(t *testing.T) {
	path := writeConfig(t, "port: 8080\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream.base_url")
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "upstream:\n  base_url: https://cms.example.com\nenv: production\n")
	t.Setenv("PORT", "9000")
	t.Setenv("WP_BASE_URL", "https://other.example.com")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "https://other.example.com", cfg.Upstream.BaseURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}

func TestLoadMissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("WP_BASE_URL", "https://cms.example.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, "https://cms.example.com", cfg.Upstream.BaseURL)
}
