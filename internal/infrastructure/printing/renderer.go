package printing

import (
	"bytes"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/erp/suratjalan/internal/domain/printing"
	"github.com/erp/suratjalan/internal/domain/shipping"
)

// RenderResult contains the output from PDF rendering
type RenderResult struct {
	// PDFData is the raw PDF file content
	PDFData []byte
	// PageCount is the number of physical pages in the PDF
	PageCount int
	// LogicalPages is the number of sheets the layout asked for
	LogicalPages int
	// Engine is the name of the engine that produced the PDF
	Engine string
	// RenderDuration is how long the rendering took
	RenderDuration time.Duration
}

// PDFRenderer defines the interface for drawing a layout as PDF
type PDFRenderer interface {
	// Name identifies the engine in logs and metrics
	Name() string
	// Render draws the layout into a PDF document
	Render(ctx context.Context, layout *printing.Layout) (*RenderResult, error)
	// Close releases any resources held by the renderer
	Close() error
}

// RenderError represents an error during PDF rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout     = "RENDER_TIMEOUT"
	ErrCodeRenderFailed      = "RENDER_FAILED"
	ErrCodeInvalidHTML       = "INVALID_HTML"
	ErrCodeInvalidLayout     = "INVALID_LAYOUT"
	ErrCodeEngineUnavailable = "ENGINE_UNAVAILABLE"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// contextError maps a cancelled or expired context to a RenderError
func contextError(ctx context.Context, cause error) *RenderError {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return NewRenderError(ErrCodeRenderTimeout, "PDF rendering timed out", cause)
	}
	return NewRenderError(ErrCodeRenderTimeout, "PDF rendering was cancelled", cause)
}

// Renderer lays a document out for a variant and hands the layout to an engine
type Renderer struct {
	engine PDFRenderer
	logger *zap.Logger
}

// NewRenderer creates a renderer backed by engine
func NewRenderer(engine PDFRenderer, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{engine: engine, logger: logger}
}

// Engine returns the underlying PDF engine
func (r *Renderer) Engine() PDFRenderer {
	return r.engine
}

// EngineName returns the name of the underlying PDF engine
func (r *Renderer) EngineName() string {
	return r.engine.Name()
}

// Layout builds the page sequence of doc for variant without drawing it
func (r *Renderer) Layout(doc *shipping.Document, variant printing.Variant) (*printing.Layout, error) {
	spec, err := printing.SpecFor(variant)
	if err != nil {
		return nil, err
	}
	return printing.BuildLayout(doc, spec)
}

// Render produces the PDF of doc in the given variant
func (r *Renderer) Render(ctx context.Context, doc *shipping.Document, variant printing.Variant) (*RenderResult, error) {
	layout, err := r.Layout(doc, variant)
	if err != nil {
		return nil, err
	}

	result, err := r.engine.Render(ctx, layout)
	if err != nil {
		r.logger.Warn("PDF engine failed",
			zap.String("engine", r.engine.Name()),
			zap.String("variant", variant.String()),
			zap.Error(err))
		return nil, err
	}
	result.LogicalPages = layout.PageCount()
	return result, nil
}

// Close releases the engine
func (r *Renderer) Close() error {
	return r.engine.Close()
}

// estimatePageCount counts page objects in a PDF produced by any engine
func estimatePageCount(pdfData []byte) int {
	count := bytes.Count(pdfData, []byte("/Type /Page"))
	// "/Type /Pages" also matches the prefix
	parentCount := bytes.Count(pdfData, []byte("/Type /Pages"))
	count = count - parentCount
	return max(count, 1)
}
