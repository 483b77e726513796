package geocoding

import (
	"context"
	"net/http"

	"github.com/UnknownOlympus/geonorm/internal/models"
)

// Provider is an interface that defines a method for geocoding an address.
// The Geocode method takes a context and an address string as input,
// and returns the normalized record for the first match and an error if any occurs.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.GeocodeResult, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
