// Package metrics holds the instruments recorded by the service and shared
// histogram settings.
package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Validation records the outcome and latency of card validation requests.
type Validation struct {
	validations metric.Int64Counter
	duration    metric.Float64Histogram
}

// NewValidation creates the validation instruments on meter.
func NewValidation(meter metric.Meter) (*Validation, error) {
	validations, err := meter.Int64Counter("card_validations",
		metric.WithDescription("Number of validated cards by detected network and outcome."),
		metric.WithUnit("{card}"))
	if err != nil {
		return nil, fmt.Errorf("could not create validations counter: %w", err)
	}

	duration, err := meter.Float64Histogram("card_validation_request_duration",
		metric.WithDescription("Time spent serving a card validation request."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create validation duration histogram: %w", err)
	}

	return &Validation{validations: validations, duration: duration}, nil
}

// Record adds one validation with its network and outcome. A nil receiver is a no-op.
func (v *Validation) Record(ctx context.Context, network string, valid bool, elapsed time.Duration) {
	if v == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("network", network),
		attribute.Bool("valid", valid),
	)
	v.validations.Add(ctx, 1, attrs)
	v.duration.Record(ctx, elapsed.Seconds(), attrs)
}
