package config

import (
	"time"

	"github.com/spf13/viper"
)

// DefaultBaseURL is where the client looks for the persistence endpoint.
const DefaultBaseURL = "http://localhost:3001/api"

// Client holds the remote task service settings.
type Client struct {
	BaseURL string `json:"base_url" yaml:"base_url"`
	// Timeout bounds each request; zero leaves requests unbounded.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

func getClientConfig(v *viper.Viper) *Client {
	return &Client{
		BaseURL: getStringOrDefault(v, "client.base_url", DefaultBaseURL),
		Timeout: getDurationOrDefault(v, "client.timeout", 0),
	}
}
