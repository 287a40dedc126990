package printing

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/erp/suratjalan/internal/domain/printing"
	"github.com/erp/suratjalan/internal/domain/shared"
	"github.com/erp/suratjalan/internal/domain/shipping"
	infra "github.com/erp/suratjalan/internal/infrastructure/printing"
	"github.com/erp/suratjalan/internal/infrastructure/logger"
	"github.com/erp/suratjalan/internal/infrastructure/telemetry"
)

const (
	// DefaultFileName is the file name given to every rendered delivery note
	DefaultFileName = "surat-jalan.pdf"
	// ContentTypePDF is the media type of rendered documents
	ContentTypePDF = "application/pdf"

	serviceName = "PrintService"
)

// DocumentRenderer lays delivery notes out and draws them as PDF
type DocumentRenderer interface {
	EngineName() string
	Layout(doc *shipping.Document, variant printing.Variant) (*printing.Layout, error)
	Render(ctx context.Context, doc *shipping.Document, variant printing.Variant) (*infra.RenderResult, error)
}

// ResultCache stores rendered PDFs by content key
type ResultCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// PrintService handles delivery note rendering
type PrintService struct {
	renderer      DocumentRenderer
	templates     *infra.TemplateEngine
	metrics       *telemetry.RenderMetrics
	cache         ResultCache
	cacheTTL      time.Duration
	renderTimeout time.Duration
	logger        *zap.Logger
}

// Option configures a PrintService
type Option func(*PrintService)

// WithMetrics records render counters and durations on m
func WithMetrics(m *telemetry.RenderMetrics) Option {
	return func(s *PrintService) {
		s.metrics = m
	}
}

// WithRenderTimeout bounds each render; zero means no limit
func WithRenderTimeout(d time.Duration) Option {
	return func(s *PrintService) {
		s.renderTimeout = d
	}
}

// WithResultCache reuses PDFs rendered for identical documents
func WithResultCache(c ResultCache, ttl time.Duration) Option {
	return func(s *PrintService) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithTemplateEngine sets the engine used for HTML previews
func WithTemplateEngine(e *infra.TemplateEngine) Option {
	return func(s *PrintService) {
		s.templates = e
	}
}

// NewPrintService creates a new PrintService
func NewPrintService(renderer DocumentRenderer, logger *zap.Logger, opts ...Option) *PrintService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &PrintService{
		renderer: renderer,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.templates == nil {
		s.templates = infra.NewTemplateEngine()
	}
	return s
}

// Document validates req and builds the delivery note.
// A nil request yields the sample document of variant.
func (s *PrintService) Document(req *DocumentRequest, variant printing.Variant) (*shipping.Document, error) {
	if req == nil {
		sample := SampleRequest(variant)
		req = &sample
	}
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	return shipping.NewDocument(req.ToParams())
}

// Sample returns the sample document of the named variant
func (s *PrintService) Sample(variantName string) (*DocumentRequest, error) {
	variant, err := printing.ParseVariant(variantName)
	if err != nil {
		return nil, err
	}
	sample := SampleRequest(variant)
	return &sample, nil
}

// GeneratePDF renders the delivery note of req in the named variant
func (s *PrintService) GeneratePDF(ctx context.Context, variantName string, req *DocumentRequest) (*PDFResult, error) {
	variant, err := printing.ParseVariant(variantName)
	if err != nil {
		return nil, err
	}
	doc, err := s.Document(req, variant)
	if err != nil {
		return nil, err
	}
	return s.RenderDocument(ctx, doc, variant)
}

// GenerateBase64 renders the delivery note and encodes it as base64
func (s *PrintService) GenerateBase64(ctx context.Context, variantName string, req *DocumentRequest) (*Base64Response, error) {
	result, err := s.GeneratePDF(ctx, variantName, req)
	if err != nil {
		return nil, err
	}
	return &Base64Response{
		FileName:    result.FileName,
		ContentType: result.ContentType,
		Base64:      base64.StdEncoding.EncodeToString(result.Data),
	}, nil
}

// Preview renders the HTML form of the delivery note without producing a PDF
func (s *PrintService) Preview(ctx context.Context, variantName string, req *DocumentRequest) (*PreviewResponse, error) {
	variant, err := printing.ParseVariant(variantName)
	if err != nil {
		return nil, err
	}
	doc, err := s.Document(req, variant)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "Preview",
		telemetry.WithAttribute(telemetry.SpanAttrVariant, variant.String()),
		telemetry.WithAttribute(telemetry.SpanAttrItemCount, doc.ItemCount()),
	)
	defer span.End()

	layout, err := s.renderer.Layout(doc, variant)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	html, err := s.templates.RenderLayout(ctx, layout)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to render preview: %w", err)
	}
	telemetry.SetOK(span)

	return &PreviewResponse{
		HTML:      html,
		PageCount: layout.PageCount(),
		Variant:   variant.String(),
	}, nil
}

// RenderDocument draws an already built document
func (s *PrintService) RenderDocument(ctx context.Context, doc *shipping.Document, variant printing.Variant) (*PDFResult, error) {
	if doc == nil {
		return nil, shipping.ErrInvalidDocument
	}
	engine := s.renderer.EngineName()

	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "Render",
		telemetry.WithAttribute(telemetry.SpanAttrVariant, variant.String()),
		telemetry.WithAttribute(telemetry.SpanAttrEngine, engine),
		telemetry.WithAttribute(telemetry.SpanAttrDocumentNumber, doc.Number()),
		telemetry.WithAttribute(telemetry.SpanAttrItemCount, doc.ItemCount()),
	)
	defer span.End()

	log := logger.WithLogger(ctx, logger.FromContextOr(ctx, s.logger)).With(
		zap.String("variant", variant.String()),
		zap.String("engine", engine),
		zap.String("number", doc.Number()),
	)

	key := s.cacheKey(doc, variant, engine)
	cached, hit := s.cachedResult(ctx, key, log)
	if key != "" && s.metrics != nil {
		s.metrics.RecordCacheLookup(ctx, variant.String(), hit)
	}
	if hit {
		telemetry.SetAttributes(span, telemetry.SpanAttrCacheHit, true)
		telemetry.SetOK(span)
		cached.Variant = variant.String()
		cached.Engine = engine
		log.Debug("Delivery note served from cache", zap.Int("pages", cached.PageCount))
		return cached, nil
	}

	if s.renderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.renderTimeout)
		defer cancel()
	}

	var (
		result *infra.RenderResult
		err    error
	)
	start := time.Now()
	telemetry.WithProfilingLabels(ctx, telemetry.RenderLabels("render", variant.String(), engine), func(ctx context.Context) {
		result, err = s.renderer.Render(ctx, doc, variant)
	})
	elapsed := time.Since(start)

	if err != nil {
		telemetry.RecordError(span, err)
		if s.metrics != nil {
			s.metrics.RecordFailure(ctx, variant.String(), engine, ErrorCode(err), elapsed)
		}
		log.Error("Failed to render delivery note", zap.Error(err), zap.Duration("duration", elapsed))
		return nil, fmt.Errorf("render %s: %w", variant, err)
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrPageCount, result.PageCount,
		telemetry.SpanAttrPDFBytes, len(result.PDFData),
	)
	telemetry.SetOK(span)
	if s.metrics != nil {
		s.metrics.RecordRender(ctx, variant.String(), engine, result.PageCount, elapsed)
	}
	log.Info("Delivery note rendered",
		zap.Int("items", doc.ItemCount()),
		zap.Int("pages", result.PageCount),
		zap.Int("bytes", len(result.PDFData)),
		zap.Duration("duration", elapsed))

	out := &PDFResult{
		FileName:    DefaultFileName,
		ContentType: ContentTypePDF,
		Data:        result.PDFData,
		PageCount:   result.PageCount,
		Variant:     variant.String(),
		Engine:      engine,
	}
	if s.storeResult(ctx, key, out, log) {
		telemetry.AddEvent(span, "render_cached", telemetry.SpanAttrPDFBytes, len(out.Data))
	}
	return out, nil
}

// cachedPDF is the cache value of a rendered document
type cachedPDF struct {
	PageCount int    `json:"pageCount"`
	Data      []byte `json:"data"`
}

// cacheKey hashes the document content together with the variant and engine.
// It returns "" when no cache is configured.
func (s *PrintService) cacheKey(doc *shipping.Document, variant printing.Variant, engine string) string {
	if s.cache == nil {
		return ""
	}
	payload, err := json.Marshal(ToDocumentRequest(doc))
	if err != nil {
		return ""
	}
	h := sha256.New()
	h.Write([]byte(variant.String() + "\x00" + engine + "\x00"))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// cachedResult looks key up. Cache failures are logged and treated as misses.
func (s *PrintService) cachedResult(ctx context.Context, key string, log *logger.ContextLogger) (*PDFResult, bool) {
	if key == "" {
		return nil, false
	}
	value, found, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn("Render cache lookup failed", zap.Error(err))
		return nil, false
	}
	if !found {
		return nil, false
	}
	var entry cachedPDF
	if err := json.Unmarshal(value, &entry); err != nil || len(entry.Data) == 0 {
		log.Warn("Discarding unreadable render cache entry", zap.Error(err))
		return nil, false
	}
	return &PDFResult{
		FileName:    DefaultFileName,
		ContentType: ContentTypePDF,
		Data:        entry.Data,
		PageCount:   entry.PageCount,
	}, true
}

func (s *PrintService) storeResult(ctx context.Context, key string, result *PDFResult, log *logger.ContextLogger) bool {
	if key == "" {
		return false
	}
	value, err := json.Marshal(cachedPDF{PageCount: result.PageCount, Data: result.Data})
	if err != nil {
		return false
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		log.Warn("Failed to store rendered PDF in cache", zap.Error(err))
		return false
	}
	return true
}

// ErrorCode extracts the machine readable code of err
func ErrorCode(err error) string {
	var renderErr *infra.RenderError
	if errors.As(err, &renderErr) {
		return renderErr.Code
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return "UNKNOWN"
}
