package monitoring

import (
	"fmt"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// Config holds New Relic configuration
type Config struct {
	LicenseKey string
	AppName    string
	Enabled    bool
	LogLevel   string
}

// NewRelicApp wraps the New Relic application
type NewRelicApp struct {
	*newrelic.Application
	enabled bool
}

// New creates a new New Relic application
func New(cfg Config) (*NewRelicApp, error) {
	if !cfg.Enabled || cfg.LicenseKey == "" {
		// Return disabled app
		return &NewRelicApp{nil, false}, nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigAppLogForwardingEnabled(true),
		newrelic.ConfigDistributedTracerEnabled(true),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create New Relic application: %w", err)
	}

	return &NewRelicApp{app, true}, nil
}

// RecordCustomEvent records a custom event
func (nr *NewRelicApp) RecordCustomEvent(eventType string, params map[string]interface{}) {
	if !nr.enabled || nr.Application == nil {
		return
	}
	nr.Application.RecordCustomEvent(eventType, params)
}

// RecordCustomMetric records a custom metric
func (nr *NewRelicApp) RecordCustomMetric(name string, value float64) {
	if !nr.enabled || nr.Application == nil {
		return
	}
	nr.Application.RecordCustomMetric(name, value)
}

// Shutdown gracefully shuts down the New Relic application
func (nr *NewRelicApp) Shutdown(timeout time.Duration) {
	if !nr.enabled || nr.Application == nil {
		return
	}
	nr.Application.Shutdown(timeout)
}

// IsEnabled returns whether New Relic is enabled
func (nr *NewRelicApp) IsEnabled() bool {
	return nr.enabled
}

// Negotiation lifecycle events

// RecordRideCreated records ride creation
func (nr *NewRelicApp) RecordRideCreated(rideID string, priceOffer float64) {
	nr.RecordCustomEvent("RideCreated", map[string]interface{}{
		"ride_id":               rideID,
		"passenger_price_offer": priceOffer,
	})
}

// RecordOfferSubmitted records a driver's price offer
func (nr *NewRelicApp) RecordOfferSubmitted(rideID string, price float64) {
	nr.RecordCustomEvent("OfferSubmitted", map[string]interface{}{
		"ride_id": rideID,
		"price":   price,
	})
}

// RecordOfferAccepted records the negotiation outcome
func (nr *NewRelicApp) RecordOfferAccepted(rideID string, finalPrice float64) {
	nr.RecordCustomEvent("OfferAccepted", map[string]interface{}{
		"ride_id":     rideID,
		"final_price": finalPrice,
	})
}

// RecordRideCompleted records ride completion
func (nr *NewRelicApp) RecordRideCompleted(rideID string, finalPrice float64, paymentMethod string) {
	nr.RecordCustomEvent("RideCompleted", map[string]interface{}{
		"ride_id":        rideID,
		"final_price":    finalPrice,
		"payment_method": paymentMethod,
	})
}

// RecordOffersExpired records a sweep of expired offers
func (nr *NewRelicApp) RecordOffersExpired(count int64) {
	if count > 0 {
		nr.RecordCustomMetric("custom/offers/expired", float64(count))
	}
}
