package infrastructure

import (
	"fmt"
	"fractal-renderer/internal/domain"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var _ domain.ConfigReader = (*YAMLConfigReader)(nil)

// ConfigOverrides carries values given on the command line. Empty fields
// leave the file value untouched.
type ConfigOverrides struct {
	LogLevel string
	LogFile  string
}

type YAMLConfigReader struct {
	logger    *zap.Logger
	overrides ConfigOverrides
}

func NewYAMLConfigReader(logger *zap.Logger, overrides ConfigOverrides) *YAMLConfigReader {
	return &YAMLConfigReader{logger: logger, overrides: overrides}
}

// ReadConfig loads path, or starts from an empty config when path is "".
func (r *YAMLConfigReader) ReadConfig(path string) (*domain.Config, error) {
	var config domain.Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
		}
	}

	// Применяем аргументы командной строки
	r.applyOverrides(&config)

	// Устанавливаем значения по умолчанию
	r.setDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	r.logger.Debug("Config loaded",
		zap.String("path", path),
		zap.String("log_level", config.LogLevel),
		zap.Int("histogram_bins", config.HistogramBins),
		zap.Bool("strict_output", config.StrictOutput))

	return &config, nil
}

func (r *YAMLConfigReader) applyOverrides(config *domain.Config) {
	if r.overrides.LogLevel != "" {
		config.LogLevel = r.overrides.LogLevel
	}
	if r.overrides.LogFile != "" {
		config.LogFile = r.overrides.LogFile
	}
}

func (r *YAMLConfigReader) setDefaults(config *domain.Config) {
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}
