package geocoding

import (
	"errors"
	"fmt"
)

// StatusOK is the status value signalling a successful geocoding response.
const StatusOK = "OK"

// StatusZeroResults is reported when the address could not be matched.
const StatusZeroResults = "ZERO_RESULTS"

var (
	// ErrProviderRejected matches every StatusError.
	ErrProviderRejected = errors.New("geocoding provider rejected the request")
	// ErrMalformedResponse is returned when the response is missing expected fields or is not valid JSON.
	ErrMalformedResponse = errors.New("geocoding provider returned a malformed response")
	// ErrEmptyAddress is returned when the address is blank.
	ErrEmptyAddress = errors.New("geocoding provider got empty address")
)

// StatusError reports a response whose status is not OK, e.g. ZERO_RESULTS,
// REQUEST_DENIED or OVER_QUERY_LIMIT.
type StatusError struct {
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("geocoding status %s", e.Status)
	}

	return fmt.Sprintf("geocoding status %s: %s", e.Status, e.Message)
}

// Is reports whether target is ErrProviderRejected.
func (e *StatusError) Is(target error) bool {
	return target == ErrProviderRejected
}
