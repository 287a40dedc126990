package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// RenderMetrics counts rendered documents and pages and times each render.
type RenderMetrics struct {
	logger *zap.Logger

	documentsRendered *Counter
	pagesRendered     *Counter
	renderFailures    *Counter
	cacheLookups      *Counter
	renderDuration    *Histogram
}

// RenderMetricsConfig holds configuration for render metrics.
type RenderMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewRenderMetrics registers the render instruments on cfg.Meter.
func NewRenderMetrics(cfg RenderMetricsConfig) (*RenderMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rm := &RenderMetrics{logger: logger}
	var err error

	rm.documentsRendered, err = NewCounter(cfg.Meter,
		"suratjalan_documents_rendered_total",
		"Total number of delivery notes rendered to PDF",
		"{documents}")
	if err != nil {
		return nil, err
	}

	rm.pagesRendered, err = NewCounter(cfg.Meter,
		"suratjalan_pages_rendered_total",
		"Total number of PDF pages produced",
		"{pages}")
	if err != nil {
		return nil, err
	}

	rm.renderFailures, err = NewCounter(cfg.Meter,
		"suratjalan_render_failures_total",
		"Total number of failed renders",
		"{documents}")
	if err != nil {
		return nil, err
	}

	rm.cacheLookups, err = NewCounter(cfg.Meter,
		"suratjalan_render_cache_lookups_total",
		"Render cache lookups by result (hit or miss)",
		"{lookups}")
	if err != nil {
		return nil, err
	}

	rm.renderDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "suratjalan_render_duration_seconds",
		Description: "Time spent laying out and drawing a delivery note",
		Unit:        "s",
		Boundaries:  RenderDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return rm, nil
}

// RecordRender records a successful render of pages pages.
func (rm *RenderMetrics) RecordRender(ctx context.Context, variant, engine string, pages int, d time.Duration) {
	attrs := []attribute.KeyValue{AttrVariant.String(variant), AttrEngine.String(engine)}
	rm.documentsRendered.Inc(ctx, attrs...)
	rm.pagesRendered.Add(ctx, int64(pages), attrs...)
	rm.renderDuration.RecordDuration(ctx, d, attrs...)
}

// RecordFailure records a failed render with its error code.
func (rm *RenderMetrics) RecordFailure(ctx context.Context, variant, engine, code string, d time.Duration) {
	rm.renderFailures.Inc(ctx,
		AttrVariant.String(variant),
		AttrEngine.String(engine),
		AttrErrorCode.String(code),
	)
	rm.renderDuration.RecordDuration(ctx, d, AttrVariant.String(variant), AttrEngine.String(engine))
	rm.logger.Debug("render failure recorded",
		zap.String("variant", variant),
		zap.String("engine", engine),
		zap.String("code", code))
}

// RecordCacheLookup counts one render cache lookup
func (rm *RenderMetrics) RecordCacheLookup(ctx context.Context, variant string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	rm.cacheLookups.Inc(ctx, AttrVariant.String(variant), AttrCacheResult.String(result))
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewRenderMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
