package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/mark3labs/attachr/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSetup_WritesProjectConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	saved := setupFlags
	t.Cleanup(func() { setupFlags = saved })

	setupFlags.project = true
	setupFlags.backendURL = "https://backend.example.com"
	setupFlags.publishableKey = "pk_test"

	var out bytes.Buffer
	setupCmd.SetOut(&out)
	require.NoError(t, runSetup(setupCmd, nil))
	assert.Contains(t, out.String(), "Config written to: attachr.yml")

	data, err := os.ReadFile(config.ProjectPath())
	require.NoError(t, err)
	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, "https://backend.example.com", cfg.BackendURL)
	assert.Equal(t, "pk_test", cfg.PublishableKey)
	assert.Equal(t, config.CatalogAuto, cfg.Catalog)

	// Refuses to overwrite without --force
	err = runSetup(setupCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	setupFlags.force = true
	require.NoError(t, runSetup(setupCmd, nil))
}
