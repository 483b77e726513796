package geocoding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/geonorm/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It is used to interact with the
// Google Maps geocoding services.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// statuses the maps client reports as "maps: STATUS - message" errors.
var sdkStatuses = map[string]struct{}{
	"INVALID_REQUEST":  {},
	"OVER_DAILY_LIMIT": {},
	"OVER_QUERY_LIMIT": {},
	"REQUEST_DENIED":   {},
	"UNKNOWN_ERROR":    {},
}

// NewGoogleProvider initializes a new GoogleProvider with the given Google Maps client and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Geocode takes a context and an address string as input, and returns the normalized
// record of the provided address using the Google Maps Geocoding API.
// A non-OK status from the API is returned as a *StatusError, ZERO_RESULTS included.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.GeocodeResult, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address)

	if strings.TrimSpace(address) == "" {
		return nil, ErrEmptyAddress
	}

	req := maps.GeocodingRequest{Address: address}
	geocodeResponse, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		if statusErr := parseSDKStatus(err); statusErr != nil {
			return nil, statusErr
		}
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}

	if len(geocodeResponse) == 0 {
		return nil, &StatusError{Status: StatusZeroResults}
	}

	first := geocodeResponse[0]
	components := make([]models.AddressComponent, 0, len(first.AddressComponents))
	for _, comp := range first.AddressComponents {
		components = append(components, models.AddressComponent{LongName: comp.LongName, Types: comp.Types})
	}

	coords := first.Geometry.Location

	return NewGeocodeResult(models.Location{Latitude: coords.Lat, Longitude: coords.Lng}, components)
}

// parseSDKStatus turns a "maps: STATUS - message" error into a StatusError.
// It returns nil for anything else.
func parseSDKStatus(err error) *StatusError {
	rest, ok := strings.CutPrefix(err.Error(), "maps: ")
	if !ok {
		return nil
	}

	status, message, _ := strings.Cut(rest, " - ")
	if _, known := sdkStatuses[status]; !known {
		return nil
	}

	return &StatusError{Status: status, Message: message}
}
