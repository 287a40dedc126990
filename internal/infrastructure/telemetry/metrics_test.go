package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func setupManualReader(t *testing.T) (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return reader, provider
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestNewMeterProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	mp, err := NewMeterProvider(ctx, MetricsConfig{ServiceName: "suratjalan-test"}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(ctx))
}

func TestCounterAndHistogram(t *testing.T) {
	reader, provider := setupManualReader(t)
	meter := provider.Meter("test")
	ctx := context.Background()

	counter, err := NewCounter(meter, "test_total", "test counter", "{things}")
	require.NoError(t, err)
	counter.Inc(ctx, AttrVariant.String("single-page"))
	counter.Add(ctx, 4, AttrVariant.String("single-page"))

	histogram, err := NewHistogram(meter, HistogramOpts{
		Name:       "test_duration_seconds",
		Unit:       "s",
		Boundaries: []float64{0.1, 1},
	})
	require.NoError(t, err)
	histogram.RecordDuration(ctx, 250*time.Millisecond)
	histogram.Record(ctx, 2)

	metrics := collect(t, reader)

	sum := metrics["test_total"].Data.(metricdata.Sum[int64])
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(5), sum.DataPoints[0].Value)

	hist := metrics["test_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
	assert.Equal(t, []float64{0.1, 1}, hist.DataPoints[0].Bounds)
	assert.Equal(t, []uint64{0, 1, 1}, hist.DataPoints[0].BucketCounts)
}

func TestNewRenderMetrics_NilMeter(t *testing.T) {
	rm, err := NewRenderMetrics(RenderMetricsConfig{})
	require.Error(t, err)
	assert.Nil(t, rm)
	assert.Equal(t, "NewRenderMetrics: meter cannot be nil", err.Error())
}

func TestRenderMetrics_Noop(t *testing.T) {
	rm, err := NewRenderMetrics(RenderMetricsConfig{Meter: noop.NewMeterProvider().Meter("test")})
	require.NoError(t, err)

	// Should not panic
	rm.RecordRender(context.Background(), "single-page", "fpdf", 1, time.Millisecond)
	rm.RecordFailure(context.Background(), "multi-page", "chromedp", "RENDER_TIMEOUT", time.Second)
}

func TestRenderMetrics_Record(t *testing.T) {
	reader, provider := setupManualReader(t)
	rm, err := NewRenderMetrics(RenderMetricsConfig{Meter: provider.Meter("test")})
	require.NoError(t, err)
	ctx := context.Background()

	rm.RecordRender(ctx, "multi-page", "fpdf", 2, 20*time.Millisecond)
	rm.RecordRender(ctx, "multi-page", "fpdf", 3, 30*time.Millisecond)
	rm.RecordFailure(ctx, "single-page", "fpdf", "RENDER_FAILED", time.Millisecond)

	metrics := collect(t, reader)

	docs := metrics["suratjalan_documents_rendered_total"].Data.(metricdata.Sum[int64])
	require.Len(t, docs.DataPoints, 1)
	assert.Equal(t, int64(2), docs.DataPoints[0].Value)
	variant, ok := docs.DataPoints[0].Attributes.Value(AttrVariant)
	require.True(t, ok)
	assert.Equal(t, "multi-page", variant.AsString())

	pages := metrics["suratjalan_pages_rendered_total"].Data.(metricdata.Sum[int64])
	require.Len(t, pages.DataPoints, 1)
	assert.Equal(t, int64(5), pages.DataPoints[0].Value)

	failures := metrics["suratjalan_render_failures_total"].Data.(metricdata.Sum[int64])
	require.Len(t, failures.DataPoints, 1)
	code, ok := failures.DataPoints[0].Attributes.Value(attribute.Key("error_code"))
	require.True(t, ok)
	assert.Equal(t, "RENDER_FAILED", code.AsString())

	duration := metrics["suratjalan_render_duration_seconds"].Data.(metricdata.Histogram[float64])
	var count uint64
	for _, dp := range duration.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(3), count)
}

func TestRenderMetrics_CacheLookups(t *testing.T) {
	reader, provider := setupManualReader(t)
	rm, err := NewRenderMetrics(RenderMetricsConfig{Meter: provider.Meter("test")})
	require.NoError(t, err)
	ctx := context.Background()

	rm.RecordCacheLookup(ctx, "single-page", false)
	rm.RecordCacheLookup(ctx, "single-page", true)
	rm.RecordCacheLookup(ctx, "single-page", true)

	lookups := collect(t, reader)["suratjalan_render_cache_lookups_total"].Data.(metricdata.Sum[int64])
	byResult := make(map[string]int64)
	for _, dp := range lookups.DataPoints {
		result, ok := dp.Attributes.Value(AttrCacheResult)
		require.True(t, ok)
		byResult[result.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"hit": 2, "miss": 1}, byResult)
}
