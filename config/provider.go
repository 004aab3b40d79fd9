package config

import "github.com/google/wire"

// ProviderSet is the wire provider set for the config package.
// It provides the main *Config and extracts sub-configurations for
// other modules to use.
//
// Available configurations:
//   - *Config: Main configuration
//   - *Server: HTTP listener configuration
//   - *Client: Remote task service configuration
//   - *Logger: Logger configuration
//   - *Data: Data layer configuration
//   - *Observes: Sentry and tracer configuration
var ProviderSet = wire.NewSet(
	GetConfig,
	ProvideServerConfig,
	ProvideClientConfig,
	ProvideLoggerConfig,
	ProvideDataConfig,
	ProvideObservesConfig,
)

// ProvideServerConfig provides the server configuration.
func ProvideServerConfig(cfg *Config) *Server {
	if cfg == nil {
		return nil
	}
	return cfg.Server
}

// ProvideClientConfig provides the client configuration.
func ProvideClientConfig(cfg *Config) *Client {
	if cfg == nil {
		return nil
	}
	return cfg.Client
}

// ProvideLoggerConfig provides the logger configuration.
func ProvideLoggerConfig(cfg *Config) *Logger {
	if cfg == nil {
		return nil
	}
	return cfg.Logger
}

// ProvideDataConfig provides the data layer configuration.
func ProvideDataConfig(cfg *Config) *Data {
	if cfg == nil {
		return nil
	}
	return cfg.Data
}

// ProvideObservesConfig provides the observability configuration.
func ProvideObservesConfig(cfg *Config) *Observes {
	if cfg == nil {
		return nil
	}
	return cfg.Observes
}
