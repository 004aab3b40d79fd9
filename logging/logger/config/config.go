package config

import (
	"github.com/spf13/viper"
)

// DefaultLevel is logrus.InfoLevel.
const DefaultLevel = 4

// Config configuration struct
type Config struct {
	Level      int    `json:"level" yaml:"level"`
	Format     string `json:"format" yaml:"format"`
	Output     string `json:"output" yaml:"output"`
	OutputFile string `json:"output_file" yaml:"output_file"`
	// SentryLevel is the lowest logrus level forwarded to sentry when sentry is enabled.
	SentryLevel int `json:"sentry_level" yaml:"sentry_level"`
}

// GetConfig returns the logger configuration
func GetConfig(v *viper.Viper) *Config {
	level := DefaultLevel
	if v.IsSet("logger.level") {
		level = v.GetInt("logger.level")
	}
	sentryLevel := 2
	if v.IsSet("logger.sentry_level") {
		sentryLevel = v.GetInt("logger.sentry_level")
	}

	return &Config{
		Level:       level,
		Format:      v.GetString("logger.format"),
		Output:      v.GetString("logger.output"),
		OutputFile:  v.GetString("logger.output_file"),
		SentryLevel: sentryLevel,
	}
}
