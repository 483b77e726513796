package models

// Location represents a geographical point defined by its latitude and longitude.
type Location struct {
	Latitude  float64 `json:"latitude"`  // Latitude of the geographical point.
	Longitude float64 `json:"longitude"` // Longitude of the geographical point.
}
