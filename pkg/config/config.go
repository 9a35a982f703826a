// Package config loads client settings from .mercury config files and
// MERCURY_ environment variables.
package config

import (
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/mercury/pkg/api"
)

// Config carries everything the CLI needs to reach its collaborators.
type Config struct {
	APIBaseURL string `json:"apiBaseUrl"`
	Provider   string `json:"provider"`
	ProviderID string `json:"providerId"`
	OpenAIKey  string `json:"openaiKey"`
	CachePath  string `json:"cachePath"`
}

// BasePath locates the offline snapshot cache.
func (c *Config) BasePath() string {
	return c.CachePath
}

// Load reads configuration with viper: defaults, then a .mercury file from
// MERCURY_CONFIG_PATH or the working directory, then MERCURY_* env overrides.
func Load() (*Config, error) {
	viper.SetDefault("api_base_url", api.DefaultBaseURL)
	viper.SetDefault("cache_path", "~/.mercury.db")
	viper.SetConfigName(".mercury") // .yaml is implicit
	viper.SetEnvPrefix("MERCURY")
	viper.AutomaticEnv()

	if override := os.Getenv("MERCURY_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cachePath, err := homedir.Expand(viper.GetString("cache_path"))
	if err != nil {
		return nil, err
	}

	return &Config{
		APIBaseURL: viper.GetString("api_base_url"),
		Provider:   viper.GetString("provider"),
		ProviderID: viper.GetString("provider_id"),
		OpenAIKey:  viper.GetString("openai_key"),
		CachePath:  cachePath,
	}, nil
}
