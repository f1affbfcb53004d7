package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/solscripts/internal/adapters/fs"
	"github.com/trebuchet-org/solscripts/internal/domain/config"
)

func TestLocalConfigStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file gives defaults", func(t *testing.T) {
		store := fs.NewLocalConfigStoreAdapter(&config.RuntimeConfig{ProjectRoot: t.TempDir()})

		assert.False(t, store.Exists())
		cfg, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultLocalConfig(), cfg)
	})

	t.Run("save then load", func(t *testing.T) {
		root := t.TempDir()
		store := fs.NewLocalConfigStoreAdapter(&config.RuntimeConfig{ProjectRoot: root})

		require.NoError(t, store.Save(ctx, &config.LocalConfig{Network: "goerli", Confirmations: 3}))
		assert.True(t, store.Exists())
		assert.Equal(t, filepath.Join(root, ".solscripts", "config.local.json"), store.GetPath())

		cfg, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "goerli", cfg.Network)
		assert.Equal(t, uint64(3), cfg.Confirmations)
	})

	t.Run("invalid json", func(t *testing.T) {
		root := t.TempDir()
		store := fs.NewLocalConfigStoreAdapter(&config.RuntimeConfig{ProjectRoot: root})
		require.NoError(t, os.MkdirAll(filepath.Dir(store.GetPath()), 0755))
		require.NoError(t, os.WriteFile(store.GetPath(), []byte("{"), 0644))

		_, err := store.Load(ctx)
		assert.ErrorContains(t, err, "failed to parse config file")
	})
}
