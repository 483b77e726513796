package geocoding_test

import (
	"testing"

	"github.com/UnknownOlympus/geonorm/internal/geocoding"
	"github.com/UnknownOlympus/geonorm/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexComponents(t *testing.T) {
	t.Run("first occurrence wins", func(t *testing.T) {
		components := []models.AddressComponent{
			{LongName: "Toronto", Types: []string{"locality", "political"}},
			{LongName: "Old Toronto", Types: []string{"locality"}},
			{LongName: "Canada", Types: []string{"country", "political"}},
		}

		index, err := geocoding.IndexComponents(components)

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"locality": "Toronto", "country": "Canada"}, index)
	})

	t.Run("only the first type is a key", func(t *testing.T) {
		components := []models.AddressComponent{
			{LongName: "Toronto", Types: []string{"political", "locality"}},
		}

		index, err := geocoding.IndexComponents(components)

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"political": "Toronto"}, index)
	})

	t.Run("component without types", func(t *testing.T) {
		components := []models.AddressComponent{
			{LongName: "Toronto", Types: []string{"locality"}},
			{LongName: "???"},
		}

		index, err := geocoding.IndexComponents(components)

		require.ErrorIs(t, err, geocoding.ErrMalformedResponse)
		assert.Nil(t, index)
	})
}

func TestNewGeocodeResult(t *testing.T) {
	location := models.Location{Latitude: 43.6459, Longitude: -79.3803}

	tests := []struct {
		name       string
		components []models.AddressComponent
		expected   models.GeocodeResult
	}{
		{
			name: "locality, state and country",
			components: []models.AddressComponent{
				{LongName: "Toronto", Types: []string{"locality"}},
				{LongName: "Ontario", Types: []string{"administrative_area_level_1"}},
				{LongName: "Canada", Types: []string{"country"}},
			},
			expected: models.GeocodeResult{Location: location, City: "Toronto", State: "Ontario", Country: "Canada"},
		},
		{
			name: "postal town when locality is missing",
			components: []models.AddressComponent{
				{LongName: "Reading", Types: []string{"postal_town"}},
				{LongName: "England", Types: []string{"administrative_area_level_1", "political"}},
				{LongName: "United Kingdom", Types: []string{"country", "political"}},
			},
			expected: models.GeocodeResult{
				Location: location, City: "Reading", State: "England", Country: "United Kingdom",
			},
		},
		{
			name: "locality preferred over postal town",
			components: []models.AddressComponent{
				{LongName: "Reading", Types: []string{"postal_town"}},
				{LongName: "Caversham", Types: []string{"locality"}},
			},
			expected: models.GeocodeResult{Location: location, City: "Caversham"},
		},
		{
			name: "no city tags",
			components: []models.AddressComponent{
				{LongName: "Canada", Types: []string{"country"}},
			},
			expected: models.GeocodeResult{Location: location, Country: "Canada"},
		},
		{
			name:     "no components",
			expected: models.GeocodeResult{Location: location},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := geocoding.NewGeocodeResult(location, tt.components)

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.expected, *result)
		})
	}
}
