package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlshield/sqlshield/pkg/types"
)

func TestHolderGetReturnsInitial(t *testing.T) {
	cfg := Default()
	h := NewHolder(cfg, "", nil)
	require.Same(t, cfg, h.Get())
}

func TestHolderReloadSwapsConfigAndNotifies(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("enabled: true\nstrategy: BLOCK\nrules: {}\n"), 0o644))

	h := NewHolder(Default(), path, nil)

	var notifiedOld, notifiedNew *types.GlobalConfig
	h.OnReload(func(old, next *types.GlobalConfig) {
		notifiedOld, notifiedNew = old, next
	})

	require.NoError(t, os.WriteFile(path, []byte("enabled: false\nstrategy: WARN\nrules: {}\n"), 0o644))
	require.NoError(t, h.Reload())

	require.False(t, h.Get().Enabled)
	require.Equal(t, types.StrategyWarn, h.Get().Strategy)
	require.NotNil(t, notifiedOld)
	require.NotNil(t, notifiedNew)
	require.NotSame(t, notifiedOld, notifiedNew)
}

func TestHolderReloadKeepsOldConfigOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("enabled: true\nstrategy: BLOCK\nrules: {}\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	h := NewHolder(cfg, path, nil)

	require.NoError(t, os.WriteFile(path, []byte("strategy: NOT-A-STRATEGY\n"), 0o644))
	require.Error(t, h.Reload())
	require.Same(t, cfg, h.Get())
}

func TestHolderReloadWithoutPathFails(t *testing.T) {
	h := NewHolder(Default(), "", nil)
	require.Error(t, h.Reload())
}
