package config

import (
	"evolveapp-desktop/internal/domain"
)

// DefaultAPIURL is used when API_URL is unset.
const DefaultAPIURL = "http://localhost:8000"

// DefaultSettings returns baseline local configuration for first launch.
func DefaultSettings() domain.Settings {
	return domain.Settings{
		ShareDiagnostics: true,
	}
}
