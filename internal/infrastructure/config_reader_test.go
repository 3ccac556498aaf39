package infrastructure

import (
	"fractal-renderer/internal/domain"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestReadConfigDefaults(t *testing.T) {
	reader := NewYAMLConfigReader(zaptest.NewLogger(t), ConfigOverrides{})

	config, err := reader.ReadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "info", config.LogLevel)
	assert.Empty(t, config.LogFile)
	assert.Zero(t, config.HistogramBins)
	assert.False(t, config.StrictOutput)
}

func TestReadConfigFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "log_level: warn\nhistogram_bins: 32\nstrict_output: true\n")
	reader := NewYAMLConfigReader(zaptest.NewLogger(t), ConfigOverrides{})

	config, err := reader.ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", config.LogLevel)
	assert.Equal(t, 32, config.HistogramBins)
	assert.True(t, config.StrictOutput)
}

func TestReadConfigOverrides(t *testing.T) {
	path := writeFile(t, "config.yaml", "log_level: warn\nlog_file: a.log\n")
	reader := NewYAMLConfigReader(zaptest.NewLogger(t), ConfigOverrides{LogLevel: "debug"})

	config, err := reader.ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, "a.log", config.LogFile)
}

func TestReadConfigInvalid(t *testing.T) {
	reader := NewYAMLConfigReader(zaptest.NewLogger(t), ConfigOverrides{})

	_, err := reader.ReadConfig(writeFile(t, "bad.yaml", "log_level: loud\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	_, err = reader.ReadConfig(writeFile(t, "broken.yaml", "histogram_bins: [1\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	_, err = reader.ReadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
