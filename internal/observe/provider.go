package observe

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/KirkDiggler/pokeduel/internal/errors"
)

// ProviderConfig configures the metrics pipeline.
type ProviderConfig struct {
	// ServiceName is reported on every series. Default: "pokeduel".
	ServiceName string
	// Global registers the provider as the process-wide OTel provider.
	Global bool
}

// Provider exposes battle counters in the Prometheus text format.
type Provider struct {
	registry *prometheus.Registry
	meters   *sdkmetric.MeterProvider
}

// NewProvider builds a meter provider backed by its own Prometheus
// registry, which also carries the Go runtime and process collectors.
func NewProvider(cfg ProviderConfig) (*Provider, error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "pokeduel"
	}

	registry := prometheus.NewRegistry()
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, errors.Wrap(err, "failed to register go collector")
	}
	if err := registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, errors.Wrap(err, "failed to register process collector")
	}

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create prometheus exporter")
	}

	meters := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(resource.NewSchemaless(semconv.ServiceName(cfg.ServiceName))),
		sdkmetric.WithReader(exporter),
	)
	if cfg.Global {
		otel.SetMeterProvider(meters)
	}

	return &Provider{registry: registry, meters: meters}, nil
}

// Meter returns the meter battle counters register on.
func (p *Provider) Meter() metric.Meter {
	return p.meters.Meter(MeterName)
}

// Handler serves the registry for scraping.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Shutdown flushes and stops the meter provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if err := p.meters.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "failed to shut down meter provider")
	}
	return nil
}
