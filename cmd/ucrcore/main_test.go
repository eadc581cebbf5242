package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stopfield/UCR/internal/backend/mocks"
	"github.com/Stopfield/UCR/internal/device"
	"github.com/Stopfield/UCR/internal/profile"
)

func TestRun_InvalidConfigPath(t *testing.T) {
	t.Setenv("UCR_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestRun_InvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  path: ""
backend:
  codec: msgpack
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0600))
	t.Setenv("UCR_CONFIG", configPath)

	err := run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.path is required")
	assert.Contains(t, err.Error(), "backend.codec must be json or cbor")
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("UCR_CONFIG", "")
	assert.Equal(t, defaultConfigPath, getConfigPath())

	t.Setenv("UCR_CONFIG", "/custom/path/config.yaml")
	assert.Equal(t, "/custom/path/config.yaml", getConfigPath())
}

func TestActivateStartupProfile(t *testing.T) {
	profiles, err := profile.Load([]byte(`
profiles:
  - title: Default
    children:
      - title: Combat
`))
	require.NoError(t, err)

	m := profile.NewManager(profiles, device.NewRegistry(nil), mocks.NewMockController(t), nil)

	require.NoError(t, activateStartupProfile(context.Background(), profiles, m, "Default > Combat"))
	require.NotNil(t, m.Active())
	assert.Equal(t, "Combat", m.Active().Title)

	err = activateStartupProfile(context.Background(), profiles, m, "Training")
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}
