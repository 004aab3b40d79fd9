package config

import (
	"github.com/spf13/viper"
)

// Backend names accepted in data.driver.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverRedis    = "redis"
)

// Config data config struct
type Config struct {
	Driver    string `yaml:"driver" json:"driver"`
	*Database `yaml:"database" json:"database"`
	*Redis    `yaml:"redis" json:"redis"`
}

// GetConfig returns data config
func GetConfig(v *viper.Viper) *Config {
	driver := v.GetString("data.driver")
	if driver == "" {
		driver = DriverMemory
	}
	return &Config{
		Driver:   driver,
		Database: getDatabaseConfig(v),
		Redis:    getRedisConfigs(v),
	}
}
