package models

// GeocodeResult is a normalized geocoded address, shaped as the property map
// loaded into the graph database. City, State and Country may be empty.
type GeocodeResult struct {
	Location Location `json:"location"`
	Country  string   `json:"country"`
	City     string   `json:"city"`
	State    string   `json:"state"`
}

// AddressComponent is a structured fragment of a geocoded address, tagged
// with one or more type labels such as "locality" or "country".
type AddressComponent struct {
	LongName string   `json:"long_name"`
	Types    []string `json:"types"`
}
