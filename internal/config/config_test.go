package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 5, cfg.HistorySize)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 150*time.Millisecond, cfg.Debounce.Duration)
	assert.Equal(t, 3*time.Second, cfg.Timeout.Duration)
	assert.True(t, cfg.UISettings.ShowTotals)
	assert.NotEmpty(t, cfg.IndexPath)
	assert.NotEmpty(t, cfg.HistoryPath)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().HistorySize, cfg.HistorySize)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.toml")

	cfg := DefaultConfig()
	cfg.DocsDir = "/srv/docs"
	cfg.HistorySize = 8
	cfg.Debounce = Duration{200 * time.Millisecond}
	cfg.UISettings.WatchIndex = false
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/docs", loaded.DocsDir)
	assert.Equal(t, 8, loaded.HistorySize)
	assert.Equal(t, 200*time.Millisecond, loaded.Debounce.Duration)
	assert.False(t, loaded.UISettings.WatchIndex)
}

func TestLoadClampsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
history_size = 0
page_size = -3
debounce = "0s"
search_timeout = "-1s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 5, cfg.HistorySize)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 150*time.Millisecond, cfg.Debounce.Duration)
	assert.Equal(t, 3*time.Second, cfg.Timeout.Duration)
}

func TestLoadMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("history_size = ["), 0644))

	_, err := Load(path)

	assert.Error(t, err)
}

func TestDurationText(t *testing.T) {
	d := Duration{250 * time.Millisecond}

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "250ms", string(text))

	var parsed Duration
	require.NoError(t, parsed.UnmarshalText([]byte("1.5s")))
	assert.Equal(t, 1500*time.Millisecond, parsed.Duration)

	assert.Error(t, parsed.UnmarshalText([]byte("fast")))
}
