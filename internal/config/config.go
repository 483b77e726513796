package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the address normalizer.
// It is read once at process start and passed to the components that need it.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - ProviderType: The type of geocoding provider to use (google, google_sdk, nominatim).
// - APIKey: The Google Maps API key, may be empty.
// - BaseURL: Geocoding endpoint override, empty for the provider default.
// - Timeout: HTTP client timeout for provider requests.
type Config struct {
	Env          string        // Env is the current environment: local, development, production.
	ProviderType string        // ProviderType specifies which geocoding provider to use.
	APIKey       string        // The API key for accessing the geocoding service.
	BaseURL      string        // BaseURL overrides the provider endpoint.
	Timeout      time.Duration // Timeout bounds a single provider request.
}

// DefaultEnvFile is overlaid onto the process environment by MustLoad.
const DefaultEnvFile = ".env"

const (
	keyEnv          = "env"
	keyProviderType = "provider_type"
	keyAPIKey       = "api_key"
	keyBaseURL      = "base_url"
	keyTimeout      = "timeout"
)

// MustLoad loads the configuration from the environment, after overlaying DefaultEnvFile.
func MustLoad() *Config {
	return MustLoadFile(DefaultEnvFile)
}

// MustLoadFile overlays envFile onto the process environment, overriding variables
// that are already set, and builds a Config from it. A missing file is ignored.
// It panics if a value cannot be parsed.
func MustLoadFile(envFile string) *Config {
	_ = godotenv.Overload(envFile)

	vpr := viper.New()
	vpr.SetEnvPrefix("GEONORM")
	vpr.AutomaticEnv()
	vpr.SetDefault(keyEnv, "production")
	vpr.SetDefault(keyProviderType, "google")
	vpr.SetDefault(keyBaseURL, "")
	vpr.SetDefault(keyTimeout, "10s")

	if err := vpr.BindEnv(keyAPIKey, "GOOGLE_MAPS_API_KEY"); err != nil {
		panic("failed to bind api key to GOOGLE_MAPS_API_KEY")
	}

	timeout, err := time.ParseDuration(vpr.GetString(keyTimeout))
	if err != nil {
		panic("failed to parse timeout from configuration")
	}

	return &Config{
		Env:          vpr.GetString(keyEnv),
		ProviderType: vpr.GetString(keyProviderType),
		APIKey:       vpr.GetString(keyAPIKey),
		BaseURL:      vpr.GetString(keyBaseURL),
		Timeout:      timeout,
	}
}
