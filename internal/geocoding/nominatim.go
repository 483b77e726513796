package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/UnknownOlympus/geonorm/internal/models"
)

// NominatimBaseURL -- public Nominatim search endpoint.
const NominatimBaseURL = "https://nominatim.openstreetmap.org/search"

// nominatimUserAgent MUST include valid contact info per Nominatim usage policy:
// https://operations.osmfoundation.org/policies/nominatim/
const nominatimUserAgent = "GeoNorm/1.0 (https://github.com/UnknownOlympus/geonorm)"

// NominatimProvider implements the Provider interface using OpenStreetMap's Nominatim API.
// This is a free geocoding service with usage limits (1 request/second for fair use).
type NominatimProvider struct {
	client    HTTPClient   // HTTP client for making requests
	baseURL   string       // Base URL for the Nominatim API
	log       *slog.Logger // Logger for logging operations
	userAgent string
}

// nominatimResponse represents the JSON response from Nominatim API.
type nominatimResponse struct {
	Lat     string `json:"lat"` // Latitude as string
	Lon     string `json:"lon"` // Longitude as string
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"address"`
}

// NewNominatimProvider creates a new Nominatim geocoding provider.
// An empty baseURL selects the public Nominatim API endpoint.
func NewNominatimProvider(baseURL string, timeout time.Duration, log *slog.Logger) *NominatimProvider {
	return NewNominatimProviderWithClient(&http.Client{Timeout: timeout}, baseURL, log)
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewNominatimProviderWithClient(client HTTPClient, baseURL string, log *slog.Logger) *NominatimProvider {
	if baseURL == "" {
		baseURL = NominatimBaseURL
	}

	return &NominatimProvider{
		client:    client,
		baseURL:   baseURL,
		log:       log,
		userAgent: nominatimUserAgent,
	}
}

// Geocode converts an address to a normalized record using the Nominatim API.
// It respects Nominatim's usage policy by including a User-Agent header.
// City is taken from city, town or village, whichever comes first.
func (np *NominatimProvider) Geocode(ctx context.Context, address string) (*models.GeocodeResult, error) {
	np.log.DebugContext(ctx, "Geocoding using Nominatim", "address", address)

	if strings.TrimSpace(address) == "" {
		return nil, ErrEmptyAddress
	}

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")          // Only need the top result
	query.Set("addressdetails", "1") // city/state/country breakdown
	reqURL.RawQuery = query.Encode()

	np.log.DebugContext(ctx, "Nominatim request URL", "url", reqURL.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", np.userAgent)

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	np.log.DebugContext(ctx, "Nominatim raw response", "body", string(body))

	var results []nominatimResponse
	if err = json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("%w: failed to decode nominatim response: %w", ErrMalformedResponse, err)
	}

	if len(results) == 0 {
		return nil, &StatusError{Status: StatusZeroResults}
	}

	first := results[0]

	var lat, lon float64
	if _, err = fmt.Sscanf(first.Lat, "%f", &lat); err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrMalformedResponse, first.Lat)
	}
	if _, err = fmt.Sscanf(first.Lon, "%f", &lon); err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrMalformedResponse, first.Lon)
	}

	city := first.Address.City
	for _, fallback := range []string{first.Address.Town, first.Address.Village} {
		if city != "" {
			break
		}
		city = fallback
	}

	return &models.GeocodeResult{
		Location: models.Location{Latitude: lat, Longitude: lon},
		Country:  first.Address.Country,
		City:     city,
		State:    first.Address.State,
	}, nil
}
