package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "solscripts.toml"), `
[paths]
artifacts = "out"
`)
	return root
}

func TestProvider_Defaults(t *testing.T) {
	root := newProject(t)

	cfg, err := Provider(SetupViper(root, nil))
	require.NoError(t, err)

	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(root, "out"), cfg.ArtifactsDir)
	assert.Equal(t, filepath.Join(root, ".solscripts"), cfg.DataDir)
	assert.Equal(t, 5*time.Minute, cfg.Timeout)
	assert.Equal(t, uint64(1), cfg.Confirmations)
	require.NotNil(t, cfg.Network)
	assert.Equal(t, "hardhat", cfg.Network.Name)
	assert.True(t, cfg.Network.Dev)
	assert.Equal(t, filepath.Join(root, "solscripts.toml"), cfg.Project.Source)
}

func TestProvider_Precedence(t *testing.T) {
	t.Run("local config overrides defaults", func(t *testing.T) {
		root := newProject(t)
		writeFile(t, filepath.Join(root, ".solscripts", "config.local.json"),
			`{"network": "localhost", "confirmations": 2}`)

		cfg, err := Provider(SetupViper(root, nil))
		require.NoError(t, err)
		assert.Equal(t, "localhost", cfg.Network.Name)
		assert.Equal(t, uint64(2), cfg.Confirmations)
	})

	t.Run("env overrides local config", func(t *testing.T) {
		root := newProject(t)
		writeFile(t, filepath.Join(root, ".solscripts", "config.local.json"), `{"network": "localhost"}`)
		t.Setenv("SOLSCRIPTS_NETWORK", "anvil")
		t.Setenv("SOLSCRIPTS_RPC_URL", "http://127.0.0.1:9999")
		t.Setenv("SOLSCRIPTS_ARTIFACTS", "/abs/artifacts")

		cfg, err := Provider(SetupViper(root, nil))
		require.NoError(t, err)
		assert.Equal(t, "anvil", cfg.Network.Name)
		assert.Equal(t, "http://127.0.0.1:9999", cfg.Network.RPCURL)
		assert.Equal(t, "/abs/artifacts", cfg.ArtifactsDir)
	})

	t.Run("flags override env", func(t *testing.T) {
		root := newProject(t)
		t.Setenv("SOLSCRIPTS_NETWORK", "anvil")

		cmd := &cobra.Command{Use: "test"}
		cmd.Flags().String("network", "", "")
		cmd.Flags().Bool("non-interactive", false, "")
		require.NoError(t, cmd.Flags().Set("network", "localhost"))
		require.NoError(t, cmd.Flags().Set("non-interactive", "true"))

		cfg, err := Provider(SetupViper(root, cmd))
		require.NoError(t, err)
		assert.Equal(t, "localhost", cfg.Network.Name)
		assert.True(t, cfg.NonInteractive)
	})

	t.Run("unset network variables fail", func(t *testing.T) {
		root := newProject(t)
		t.Setenv("SOLSCRIPTS_NETWORK", "goerli")
		t.Setenv("GOERLI_URL", "")

		_, err := Provider(SetupViper(root, nil))
		assert.ErrorContains(t, err, "GOERLI_URL")
	})
}
