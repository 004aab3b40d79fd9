package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TASKLIST_SERVER_PORT.
const EnvPrefix = "TASKLIST"

var (
	config *Config
	path   string
	mu     sync.Mutex
	v      *viper.Viper
)

// Config represents the configuration implementation.
type Config struct {
	AppName  string
	RunMode  string
	Server   *Server
	Client   *Client
	Logger   *Logger
	Data     *Data
	Observes *Observes
	Viper    *viper.Viper
}

// Path is the configuration file location; empty means search the default paths.
type Path string

// GetConfig returns the loaded configuration, loading it from p on first use.
// It does not handle errors internally; instead, it returns the error for the caller to handle.
func GetConfig(p Path) (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if config != nil && path == string(p) {
		return config, nil
	}
	cfg, err := LoadConfig(string(p))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	config = cfg
	path = string(p)
	v = cfg.Viper
	return cfg, nil
}

// LoadConfig loads the configuration from the file.
func LoadConfig(configPath string) (*Config, error) {
	vp := viper.New()
	setDefaults(vp)

	vp.SetEnvPrefix(EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	if configPath != "" {
		vp.SetConfigFile(configPath)
		if err := vp.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		vp.SetConfigName("config")
		vp.AddConfigPath("/etc/tasklist")
		vp.AddConfigPath("$HOME/.tasklist")
		vp.AddConfigPath(".")
		if ex, err := os.Executable(); err == nil {
			vp.AddConfigPath(filepath.Dir(ex))
		}
		if err := vp.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	return fromViper(vp), nil
}

func fromViper(vp *viper.Viper) *Config {
	return &Config{
		AppName:  vp.GetString("app_name"),
		RunMode:  vp.GetString("run_mode"),
		Server:   getServerConfig(vp),
		Client:   getClientConfig(vp),
		Logger:   getLoggerConfig(vp),
		Data:     getDataConfig(vp),
		Observes: getObservesConfig(vp),
		Viper:    vp,
	}
}

func setDefaults(vp *viper.Viper) {
	vp.SetDefault("app_name", "tasklist")
	vp.SetDefault("run_mode", "release")
	vp.SetDefault("server.host", "127.0.0.1")
	vp.SetDefault("server.port", 3001)
	vp.SetDefault("server.base_path", "/api")
	vp.SetDefault("client.base_url", DefaultBaseURL)
	vp.SetDefault("logger.level", 4)
	vp.SetDefault("logger.format", "json")
	vp.SetDefault("logger.output", "stderr")
	vp.SetDefault("data.driver", "memory")
}

// Reload reloads the configuration from the file.
func Reload() error {
	mu.Lock()
	defer mu.Unlock()

	newConfig, err := LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	config = newConfig
	v = newConfig.Viper
	return nil
}

// Watch watches the configuration file and reloads it when it changes.
func Watch(callback func(*Config)) {
	mu.Lock()
	vp := v
	mu.Unlock()
	if vp == nil {
		return
	}

	vp.OnConfigChange(func(e fsnotify.Event) {
		if err := Reload(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reloading config: %v\n", err)
			return
		}
		mu.Lock()
		cfg := config
		mu.Unlock()
		callback(cfg)
	})
	vp.WatchConfig()
}
