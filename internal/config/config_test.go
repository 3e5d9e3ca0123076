package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesObliviousConstants(t *testing.T) {
	cfg := Default()
	assert.Greater(t, cfg.KWayFanout, 0)
	assert.Greater(t, cfg.ShuffleThreshold, 0)
	assert.Equal(t, cfg.ShuffleThreshold/cfg.KWayFanout, cfg.MergeRunSize)
	assert.Equal(t, cfg.KWayFanout, cfg.MergeFanout)
	assert.Equal(t, 0, cfg.DebugLevel)
}

func TestLoadWithEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesOnlySetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.toml")
	require.NoError(t, os.WriteFile(path, []byte("kway_fanout = 4\nmerge_run_size = 16\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, 4, cfg.KWayFanout)
	assert.Equal(t, 16, cfg.MergeRunSize)
	assert.Equal(t, def.ShuffleThreshold, cfg.ShuffleThreshold)
	assert.Equal(t, def.MergeFanout, cfg.MergeFanout)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.Error(t, err)
}

func TestFromEnvironmentReadsDebugVars(t *testing.T) {
	t.Setenv("OBJOIN_DEBUG", "3")
	t.Setenv("OBJOIN_DEBUG_DIR", "/tmp/objoin-debug")

	cfg := FromEnvironment(Default())
	assert.Equal(t, DebugInfo, cfg.DebugLevel)
	assert.Equal(t, "/tmp/objoin-debug", cfg.DebugDir)
}

func TestFromEnvironmentIgnoresOutOfRangeLevel(t *testing.T) {
	t.Setenv("OBJOIN_DEBUG", "99")
	t.Setenv("OBJOIN_DEBUG_DIR", "")

	cfg := FromEnvironment(Default())
	assert.Equal(t, 0, cfg.DebugLevel)
}
