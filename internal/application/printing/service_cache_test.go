package printing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	domain "github.com/erp/suratjalan/internal/domain/printing"
	"github.com/erp/suratjalan/internal/infrastructure/cache"
	"github.com/erp/suratjalan/internal/infrastructure/telemetry"
)

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func TestPrintService_ResultCache(t *testing.T) {
	store := cache.NewInMemoryRenderCache(16)
	defer store.Close()

	engine := new(MockEngine)
	engine.On("Render", mock.Anything, mock.Anything).Return(fakeResult(1), nil).Once()
	svc := newTestService(engine, WithResultCache(store, time.Minute))
	ctx := context.Background()

	first, err := svc.GeneratePDF(ctx, "single-page", validRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, store.Size())

	second, err := svc.GeneratePDF(ctx, "single-page", validRequest())
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, first.PageCount, second.PageCount)
	assert.Equal(t, "single-page", second.Variant)
	assert.Equal(t, "mock", second.Engine)
	assert.Equal(t, DefaultFileName, second.FileName)
	engine.AssertNumberOfCalls(t, "Render", 1)
}

func TestPrintService_ResultCache_KeyedByContent(t *testing.T) {
	store := cache.NewInMemoryRenderCache(16)
	defer store.Close()

	engine := new(MockEngine)
	engine.On("Render", mock.Anything, mock.Anything).Return(fakeResult(1), nil)
	svc := newTestService(engine, WithResultCache(store, time.Minute))
	ctx := context.Background()

	_, err := svc.GeneratePDF(ctx, "single-page", validRequest())
	require.NoError(t, err)

	changed := validRequest()
	changed.Number = "SJ/OTHER/001"
	_, err = svc.GeneratePDF(ctx, "single-page", changed)
	require.NoError(t, err)

	_, err = svc.GeneratePDF(ctx, "multi-page", validRequest())
	require.NoError(t, err)

	engine.AssertNumberOfCalls(t, "Render", 3)
	assert.Equal(t, 3, store.Size())
}

func TestPrintService_ResultCache_FailuresAreMisses(t *testing.T) {
	engine := new(MockEngine)
	engine.On("Render", mock.Anything, mock.Anything).Return(fakeResult(1), nil)
	svc := newTestService(engine, WithResultCache(brokenCache{}, time.Minute))

	for i := 0; i < 2; i++ {
		result, err := svc.GeneratePDF(context.Background(), "single-page", validRequest())
		require.NoError(t, err)
		assert.Equal(t, fakePDF, result.Data)
	}
	engine.AssertNumberOfCalls(t, "Render", 2)
}

func TestPrintService_ResultCache_IgnoresCorruptEntries(t *testing.T) {
	store := cache.NewInMemoryRenderCache(16)
	defer store.Close()

	engine := new(MockEngine)
	engine.On("Render", mock.Anything, mock.Anything).Return(fakeResult(1), nil)
	svc := newTestService(engine, WithResultCache(store, time.Minute))

	variant := domain.VariantSinglePage
	doc, err := svc.Document(validRequest(), variant)
	require.NoError(t, err)
	key := svc.cacheKey(doc, variant, "mock")
	require.NotEmpty(t, key)
	require.NoError(t, store.Set(context.Background(), key, []byte("not json"), time.Minute))

	result, err := svc.RenderDocument(context.Background(), doc, variant)
	require.NoError(t, err)
	assert.Equal(t, fakePDF, result.Data)
	engine.AssertNumberOfCalls(t, "Render", 1)
}

func TestPrintService_ResultCache_FailedRenderNotStored(t *testing.T) {
	store := cache.NewInMemoryRenderCache(16)
	defer store.Close()

	engine := new(MockEngine)
	engine.On("Render", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))
	svc := newTestService(engine, WithResultCache(store, time.Minute))

	_, err := svc.GeneratePDF(context.Background(), "single-page", validRequest())
	require.Error(t, err)
	assert.Zero(t, store.Size())
}

func TestPrintService_ResultCache_RecordsLookups(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	metrics, err := telemetry.NewRenderMetrics(telemetry.RenderMetricsConfig{Meter: provider.Meter("test")})
	require.NoError(t, err)

	store := cache.NewInMemoryRenderCache(16)
	defer store.Close()

	engine := new(MockEngine)
	engine.On("Render", mock.Anything, mock.Anything).Return(fakeResult(1), nil)
	svc := newTestService(engine, WithMetrics(metrics), WithResultCache(store, time.Minute))

	for i := 0; i < 3; i++ {
		_, err := svc.GeneratePDF(context.Background(), "single-page", nil)
		require.NoError(t, err)
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	assert.Equal(t, int64(3), counterTotal(rm, "suratjalan_render_cache_lookups_total"))
	assert.Equal(t, int64(1), counterTotal(rm, "suratjalan_documents_rendered_total"))
}

func TestPrintService_ResultCache_TracesStoreAndHit(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})

	store := cache.NewInMemoryRenderCache(16)
	defer store.Close()

	engine := new(MockEngine)
	engine.On("Render", mock.Anything, mock.Anything).Return(fakeResult(1), nil).Once()
	svc := newTestService(engine, WithResultCache(store, time.Minute))

	for i := 0; i < 2; i++ {
		_, err := svc.GeneratePDF(context.Background(), "single-page", validRequest())
		require.NoError(t, err)
	}

	var renders []sdktrace.ReadOnlySpan
	for _, span := range sr.Ended() {
		if span.Name() == "PrintService.Render" {
			renders = append(renders, span)
		}
	}
	require.Len(t, renders, 2)

	require.Len(t, renders[0].Events(), 1)
	event := renders[0].Events()[0]
	assert.Equal(t, "render_cached", event.Name)
	require.Len(t, event.Attributes, 1)
	assert.Equal(t, telemetry.SpanAttrPDFBytes, string(event.Attributes[0].Key))
	assert.Equal(t, int64(len(fakePDF)), event.Attributes[0].Value.AsInt64())

	assert.Empty(t, renders[1].Events())
	hit := false
	for _, attr := range renders[1].Attributes() {
		if string(attr.Key) == telemetry.SpanAttrCacheHit {
			hit = attr.Value.AsBool()
		}
	}
	assert.True(t, hit)
}
