package config

import (
	"strings"

	"github.com/spf13/viper"

	"evolveapp-desktop/internal/domain"
)

// LoadAPIConfig reads the remote API location from the environment. A new
// viper instance is used on every call so values are never cached.
func LoadAPIConfig() domain.APIConfig {
	v := viper.New()
	v.SetDefault("api_url", DefaultAPIURL)
	_ = v.BindEnv("api_url", "API_URL")
	_ = v.BindEnv("api_key", "API_KEY")

	return domain.APIConfig{
		BaseURL: strings.TrimSpace(v.GetString("api_url")),
		APIKey:  strings.TrimSpace(v.GetString("api_key")),
	}
}
