package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/seqplan/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name reported in the otel resource.
	ServiceName string
	// ServiceVersion is the version reported in the otel resource.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds OpenTelemetry metric instruments for the planner.
type Metrics struct {
	planTotal         metric.Int64Counter
	planEntries       metric.Int64Counter
	passTotal         metric.Int64Counter
	synthesisDuration metric.Float64Histogram
	passDuration      metric.Float64Histogram
	passElements      metric.Int64Histogram
	errorTotal        metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	planTotal, err := meter.Int64Counter("plan.total",
		metric.WithDescription("Total number of plans synthesized"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating plan.total counter: %w", err)
	}

	planEntries, err := meter.Int64Counter("plan.entries",
		metric.WithDescription("Plan entries emitted, by entry type"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating plan.entries counter: %w", err)
	}

	passTotal, err := meter.Int64Counter("pass.total",
		metric.WithDescription("Materialization passes executed, by mode"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pass.total counter: %w", err)
	}

	synthesisDuration, err := meter.Float64Histogram("plan.synthesis.duration",
		metric.WithDescription("Duration of plan synthesis in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating plan.synthesis.duration histogram: %w", err)
	}

	passDuration, err := meter.Float64Histogram("pass.duration",
		metric.WithDescription("Duration of materialization passes in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pass.duration histogram: %w", err)
	}

	passElements, err := meter.Int64Histogram("pass.elements",
		metric.WithDescription("Elements surviving each materialization pass"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pass.elements histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("error.total",
		metric.WithDescription("Total errors by type and component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error.total counter: %w", err)
	}

	return &Metrics{
		planTotal:         planTotal,
		planEntries:       planEntries,
		passTotal:         passTotal,
		synthesisDuration: synthesisDuration,
		passDuration:      passDuration,
		passElements:      passElements,
		errorTotal:        errorTotal,
	}, nil
}

// RecordPlan records a completed synthesis: entry counts by type and duration.
func (m *Metrics) RecordPlan(ctx context.Context, shape string, boundsAdjusts, passes int, duration time.Duration) {
	shapeAttr := metric.WithAttributes(attribute.String("shape", shape))
	m.planTotal.Add(ctx, 1, shapeAttr)
	m.planEntries.Add(ctx, int64(boundsAdjusts), metric.WithAttributes(
		attribute.String("entry", "bounds_adjust"),
	))
	m.planEntries.Add(ctx, int64(passes), metric.WithAttributes(
		attribute.String("entry", "materialize_pass"),
	))
	m.synthesisDuration.Record(ctx, duration.Seconds(), shapeAttr)
}

// RecordPass records one executed materialization pass.
func (m *Metrics) RecordPass(ctx context.Context, mode string, elementsIn, elementsOut int, duration time.Duration) {
	modeAttr := metric.WithAttributes(attribute.String("mode", mode))
	m.passTotal.Add(ctx, 1, modeAttr)
	m.passDuration.Record(ctx, duration.Seconds(), modeAttr)
	m.passElements.Record(ctx, int64(elementsOut), metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.Bool("shrunk", elementsOut < elementsIn),
	))
}

// RecordError records an error by type and component.
func (m *Metrics) RecordError(ctx context.Context, errType, component string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("component", component),
	))
}
