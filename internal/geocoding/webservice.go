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

// GoogleGeocodeURL -- Google Geocoding web service endpoint.
const GoogleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleWebProvider implements the Provider interface by calling the Google
// Geocoding web service directly. It sends only the address and the API key,
// so a missing key still reaches Google and comes back as REQUEST_DENIED.
type GoogleWebProvider struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the geocode endpoint
	apiKey  string       // API key, may be empty
	log     *slog.Logger // Logger for logging operations
}

// googleResponse is the subset of the geocode response that is consumed.
type googleResponse struct {
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message"`
	Results      []googleResult `json:"results"`
}

type googleResult struct {
	Geometry struct {
		Location *googleLatLng `json:"location"`
	} `json:"geometry"`
	AddressComponents *[]googleComponent `json:"address_components"`
}

// googleComponent keeps long_name nullable so a missing name is told apart from an empty one.
type googleComponent struct {
	LongName *string  `json:"long_name"`
	Types    []string `json:"types"`
}

type googleLatLng struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// NewGoogleWebProvider creates a Google web-service provider with its own HTTP client.
// An empty baseURL selects GoogleGeocodeURL.
func NewGoogleWebProvider(apiKey, baseURL string, timeout time.Duration, log *slog.Logger) *GoogleWebProvider {
	return NewGoogleWebProviderWithClient(&http.Client{Timeout: timeout}, apiKey, baseURL, log)
}

// NewGoogleWebProviderWithClient allows injecting custom HTTP client.
func NewGoogleWebProviderWithClient(
	client HTTPClient,
	apiKey string,
	baseURL string,
	log *slog.Logger,
) *GoogleWebProvider {
	if baseURL == "" {
		baseURL = GoogleGeocodeURL
	}

	return &GoogleWebProvider{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
		log:     log,
	}
}

// Geocode resolves an address with a single GET to the geocode endpoint and
// normalizes the first result.
func (wp *GoogleWebProvider) Geocode(ctx context.Context, address string) (*models.GeocodeResult, error) {
	wp.log.DebugContext(ctx, "Geocoding using Google web service", "address", address)

	if strings.TrimSpace(address) == "" {
		return nil, ErrEmptyAddress
	}

	reqURL, err := url.Parse(wp.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("address", address)
	query.Set("key", wp.apiKey)
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := wp.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var result googleResponse
	if err = json.Unmarshal(body, &result); err != nil {
		wp.log.DebugContext(ctx, "Google raw response", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: http status %d: %w", ErrMalformedResponse, resp.StatusCode, err)
	}

	if result.Status == "" {
		return nil, fmt.Errorf("%w: response has no status", ErrMalformedResponse)
	}

	if result.Status != StatusOK {
		return nil, &StatusError{Status: result.Status, Message: result.ErrorMessage}
	}

	if len(result.Results) == 0 {
		return nil, fmt.Errorf("%w: status OK without results", ErrMalformedResponse)
	}

	first := result.Results[0]
	loc := first.Geometry.Location
	if loc == nil || loc.Lat == nil || loc.Lng == nil {
		return nil, fmt.Errorf("%w: first result has no geometry location", ErrMalformedResponse)
	}

	components, err := first.components()
	if err != nil {
		return nil, err
	}

	return NewGeocodeResult(models.Location{Latitude: *loc.Lat, Longitude: *loc.Lng}, components)
}

// components converts the wire components, rejecting a missing list or a component without long_name.
// An explicitly empty list is valid.
func (r googleResult) components() ([]models.AddressComponent, error) {
	if r.AddressComponents == nil {
		return nil, fmt.Errorf("%w: first result has no address_components", ErrMalformedResponse)
	}

	components := make([]models.AddressComponent, 0, len(*r.AddressComponents))
	for idx, comp := range *r.AddressComponents {
		if comp.LongName == nil {
			return nil, fmt.Errorf("%w: address component %d has no long_name", ErrMalformedResponse, idx)
		}
		components = append(components, models.AddressComponent{LongName: *comp.LongName, Types: comp.Types})
	}

	return components, nil
}
