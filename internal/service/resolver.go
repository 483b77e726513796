package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/UnknownOlympus/geonorm/internal/geocoding"
	"github.com/UnknownOlympus/geonorm/internal/metrics"
	"github.com/UnknownOlympus/geonorm/internal/models"
)

// AddressResolver turns free-text addresses into normalized records.
// It never returns an error: every failure is logged and reported as a nil record.
type AddressResolver struct {
	log          *slog.Logger       // Logger for failure diagnostics
	provider     geocoding.Provider // Geocoding provider for external geocoding services
	providerName string             // Name of the provider for metrics labeling
	metrics      *metrics.Metrics   // Metrics for tracking resolutions
}

// NewAddressResolver creates a new instance of AddressResolver.
func NewAddressResolver(
	log *slog.Logger,
	provider geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
) *AddressResolver {
	return &AddressResolver{
		log:          log,
		provider:     provider,
		providerName: providerName,
		metrics:      metrics,
	}
}

// Resolve geocodes the address with one provider call and returns the normalized
// record, or nil when the provider rejected the request or the call failed.
// Repeated calls are independent; nothing is cached.
func (ar *AddressResolver) Resolve(ctx context.Context, address string) *models.GeocodeResult {
	if strings.TrimSpace(address) == "" {
		ar.metrics.Resolutions.WithLabelValues(metrics.OutcomeInvalidAddress).Inc()
		ar.log.WarnContext(ctx, "Skipping blank address", "error", geocoding.ErrEmptyAddress)
		return nil
	}

	result, err := ar.geocode(ctx, address)
	if err == nil {
		ar.metrics.Resolutions.WithLabelValues(metrics.OutcomeSuccess).Inc()
		return result
	}

	var statusErr *geocoding.StatusError

	switch {
	case errors.Is(err, geocoding.ErrEmptyAddress):
		ar.metrics.Resolutions.WithLabelValues(metrics.OutcomeInvalidAddress).Inc()
		ar.log.WarnContext(ctx, "Skipping blank address", "error", err)
	case errors.As(err, &statusErr):
		ar.metrics.Resolutions.WithLabelValues(metrics.OutcomeProviderRejected).Inc()
		ar.metrics.APIErrors.Inc()
		ar.log.WarnContext(ctx, "Geocoding provider rejected the request",
			"status", statusErr.Status,
			"message", statusErr.Message,
			"address", address)
	default:
		ar.metrics.Resolutions.WithLabelValues(metrics.OutcomeTransportError).Inc()
		ar.metrics.APIErrors.Inc()
		ar.log.ErrorContext(ctx, "Failed to geocode", "address", address, "error", err)
	}

	return nil
}

// geocode calls the provider once, timing the call and turning a panic into an error.
func (ar *AddressResolver) geocode(ctx context.Context, address string) (result *models.GeocodeResult, err error) {
	startTime := time.Now()
	defer func() {
		ar.metrics.RequestSeconds.WithLabelValues(ar.providerName).Observe(time.Since(startTime).Seconds())
	}()

	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("recovered from panic in geocoding provider: %v", r)
		}
	}()

	result, err = ar.provider.Geocode(ctx, address)
	if err == nil && result == nil {
		err = fmt.Errorf("%w: provider returned no record", geocoding.ErrMalformedResponse)
	}

	return result, err
}
