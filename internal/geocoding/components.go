package geocoding

import (
	"fmt"

	"github.com/UnknownOlympus/geonorm/internal/models"
)

// Component type tags read from the provider's address components.
const (
	TypeLocality   = "locality"
	TypePostalTown = "postal_town"
	TypeState      = "administrative_area_level_1"
	TypeCountry    = "country"
)

// IndexComponents maps the first type tag of every component to its long name.
// When several components share a first tag, the one listed first is kept.
func IndexComponents(components []models.AddressComponent) (map[string]string, error) {
	index := make(map[string]string, len(components))

	for idx, comp := range components {
		if len(comp.Types) == 0 {
			return nil, fmt.Errorf("%w: address component %d has no types", ErrMalformedResponse, idx)
		}

		if _, seen := index[comp.Types[0]]; !seen {
			index[comp.Types[0]] = comp.LongName
		}
	}

	return index, nil
}

// NewGeocodeResult assembles the normalized record from coordinates and address components.
// City prefers locality over postal_town; missing parts are left empty.
func NewGeocodeResult(location models.Location, components []models.AddressComponent) (*models.GeocodeResult, error) {
	index, err := IndexComponents(components)
	if err != nil {
		return nil, err
	}

	city := index[TypeLocality]
	if city == "" {
		city = index[TypePostalTown]
	}

	return &models.GeocodeResult{
		Location: location,
		Country:  index[TypeCountry],
		City:     city,
		State:    index[TypeState],
	}, nil
}
