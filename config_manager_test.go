package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

func TestLoadUserConfigFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
ignore:
  - ls
  - grep
count: 10
bar_size: 40
more_than: 2
color: never
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := loadUserConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"ls", "grep"}, cfg.Ignore)
	require.NotNil(t, cfg.Count)
	assert.Equal(t, 10, *cfg.Count)
	require.NotNil(t, cfg.BarSize)
	assert.Equal(t, 40, *cfg.BarSize)
	require.NotNil(t, cfg.MoreThan)
	assert.Equal(t, 2, *cfg.MoreThan)
	assert.Equal(t, "never", cfg.Color)
}

func TestLoadUserConfigFromPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("count: 5\n"), 0o644))

	cfg, err := loadUserConfigFrom(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Count)
	assert.Equal(t, 5, *cfg.Count)
	assert.Nil(t, cfg.BarSize)
	assert.Empty(t, cfg.Ignore)
}

func TestLoadUserConfigFromMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("count: [not an int\n"), 0o644))

	_, err := loadUserConfigFrom(path)
	assert.Error(t, err)
}

func TestApplyUserConfig(t *testing.T) {
	count := 7
	barSize := 30
	cfg := &UserConfig{
		Ignore:  []string{"ls", "cd"},
		Count:   &count,
		BarSize: &barSize,
		Color:   "never",
	}

	cmd := newRootCmd()
	opts := &runOptions{count: defaultCount, barSize: defaultBarSize}
	applyUserConfig(cmd, opts, cfg, zap.NewNop())

	assert.Equal(t, "ls|cd", opts.ignore)
	assert.Equal(t, 7, opts.count)
	assert.Equal(t, 30, opts.barSize)
	assert.Equal(t, "never", opts.color)
}

func TestApplyUserConfigFlagWins(t *testing.T) {
	count := 7
	cfg := &UserConfig{Count: &count}

	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Set("count", "3"))
	opts := &runOptions{count: 3}
	applyUserConfig(cmd, opts, cfg, zap.NewNop())

	assert.Equal(t, 3, opts.count)
}

func TestSplitIgnoreList(t *testing.T) {
	assert.Nil(t, splitIgnoreList(""))
	assert.Equal(t, []string{"ls"}, splitIgnoreList("ls"))
	assert.Equal(t, []string{"ls", "grep", "nvim"}, splitIgnoreList("ls|grep|nvim"))
	assert.Equal(t, []string{"ls", "grep"}, splitIgnoreList(" ls | grep | "))
}
