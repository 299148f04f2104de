package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MADMIN_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.PanelPageSize)
	assert.Equal(t, 8, cfg.PanelPlainPageSize)
	assert.Equal(t, 15, cfg.ObjectListPageSize)
	assert.Equal(t, "default", cfg.Source("panel_page_size"))
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MADMIN_CONFIG_PATH", dir)

	yml := "panel_page_size: 10\nobject_list_page_size: 25\ntrusted_proxies:\n  - 10.0.0.0/8\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(yml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.PanelPageSize)
	assert.Equal(t, "file", cfg.Source("panel_page_size"))
	assert.Equal(t, 25, cfg.ObjectListPageSize)
	assert.Equal(t, 8, cfg.PanelPlainPageSize, "unset attribute keeps default")
	assert.Equal(t, "default", cfg.Source("panel_plain_page_size"))
	assert.True(t, cfg.IsTrustedProxy("10.1.2.3"))
	assert.False(t, cfg.IsTrustedProxy("192.168.0.1"))
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MADMIN_CONFIG_PATH", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("panel_page_size: 10\n"), 0o644))
	t.Setenv("MADMIN_PANEL_PAGE_SIZE", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.PanelPageSize)
	assert.Equal(t, "environment", cfg.Source("panel_page_size"))
}

func TestValidate(t *testing.T) {
	cfg := newDefault()
	cfg.PanelPageSize = 0
	assert.Error(t, cfg.Validate())

	cfg = newDefault()
	cfg.TrustedProxies = []string{"not-a-cidr"}
	assert.Error(t, cfg.Validate())

	cfg = newDefault()
	cfg.TrustedProxies = []string{"10.0.0.0/8"}
	assert.NoError(t, cfg.Validate())
}
