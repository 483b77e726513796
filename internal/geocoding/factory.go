package geocoding

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of geocoding provider.
type ProviderType string

const (
	// ProviderTypeGoogle represents the Google Geocoding web service called directly.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeGoogleSDK represents Google Maps geocoding through the official Go client.
	ProviderTypeGoogleSDK ProviderType = "google_sdk"
	// ProviderTypeNominatim represents OpenStreetMap Nominatim geocoding provider.
	ProviderTypeNominatim ProviderType = "nominatim"
)

// ProviderConfig holds configuration for creating a geocoding provider.
type ProviderConfig struct {
	Type    ProviderType  // Type of provider to create
	APIKey  string        // API key (used by Google providers)
	BaseURL string        // Endpoint override, empty for the provider default
	Timeout time.Duration // HTTP client timeout, zero for none
	Logger  *slog.Logger  // Logger for the provider
}

// NewProvider creates a geocoding provider based on the provided configuration.
//
// Supported provider types:
// - "google": Google Geocoding web service (an empty API key is sent as is)
// - "google_sdk": Google Maps Go client (requires API key)
// - "nominatim": OpenStreetMap Nominatim API (free, no API key required)
//
// Returns an error if the provider type is unsupported or if provider creation fails.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeGoogle:
		return NewGoogleWebProvider(config.APIKey, config.BaseURL, config.Timeout, config.Logger), nil
	case ProviderTypeGoogleSDK:
		return newGoogleSDKProvider(config)
	case ProviderTypeNominatim:
		return NewNominatimProvider(config.BaseURL, config.Timeout, config.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newGoogleSDKProvider creates a Google Maps geocoding provider.
func newGoogleSDKProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google SDK provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
		maps.WithHTTPClient(&http.Client{Timeout: config.Timeout}),
	}

	if config.BaseURL != "" {
		clientOpts = append(clientOpts, maps.WithBaseURL(config.BaseURL))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}
