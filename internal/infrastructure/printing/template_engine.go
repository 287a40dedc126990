package printing

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"maps"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erp/suratjalan/internal/domain/printing"
)

// TemplateEngine renders HTML templates, most notably the HTML preview of a
// delivery note layout. It uses Go's html/template package with custom
// functions for CSS generation and formatting.
type TemplateEngine struct {
	funcMap template.FuncMap
}

// TemplateEngineOption configures the template engine
type TemplateEngineOption func(*TemplateEngine)

// WithFuncs adds or overrides template functions
func WithFuncs(funcs template.FuncMap) TemplateEngineOption {
	return func(e *TemplateEngine) {
		maps.Copy(e.funcMap, funcs)
	}
}

// NewTemplateEngine creates a new template engine with default configuration
func NewTemplateEngine(opts ...TemplateEngineOption) *TemplateEngine {
	e := &TemplateEngine{}

	e.funcMap = template.FuncMap{
		// Geometry
		"pt":        formatPoints,
		"rowStyle":  rowStyle,
		"colStyle":  colStyle,
		"lineStyle": lineStyle,

		// Date formatting
		"formatDate": formatDate,

		// String utilities
		"join":  strings.Join,
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"title": titleCase,
		"trim":  strings.TrimSpace,

		// Conditional
		"default": defaultFunc,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// RenderTemplateRequest represents a request to render a template
type RenderTemplateRequest struct {
	// Name identifies the template in parse errors
	Name string
	// Content is the template source
	Content string
	// Data is bound to the template
	Data any
	// AdditionalFuncs are extra template functions (optional)
	AdditionalFuncs template.FuncMap
}

// RenderTemplateResult contains the rendered HTML output
type RenderTemplateResult struct {
	// HTML is the rendered HTML content
	HTML string
	// RenderDuration is how long the rendering took
	RenderDuration time.Duration
}

// Render renders a template with the provided data
func (e *TemplateEngine) Render(ctx context.Context, req *RenderTemplateRequest) (*RenderTemplateResult, error) {
	if req == nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "render request is nil", nil)
	}
	if req.Content == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "template content is empty", nil)
	}

	startTime := time.Now()

	funcMap := make(template.FuncMap, len(e.funcMap)+len(req.AdditionalFuncs))
	maps.Copy(funcMap, e.funcMap)
	if req.AdditionalFuncs != nil {
		maps.Copy(funcMap, req.AdditionalFuncs)
	}

	name := req.Name
	if name == "" {
		name = "template"
	}
	tmpl, err := template.New(name).Funcs(funcMap).Parse(req.Content)
	if err != nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "failed to parse template", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, req.Data); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to execute template", err)
	}

	return &RenderTemplateResult{
		HTML:           buf.String(),
		RenderDuration: time.Since(startTime),
	}, nil
}

// RenderString renders a template string with the provided data
func (e *TemplateEngine) RenderString(ctx context.Context, name, content string, data any) (string, error) {
	result, err := e.Render(ctx, &RenderTemplateRequest{Name: name, Content: content, Data: data})
	if err != nil {
		return "", err
	}
	return result.HTML, nil
}

// RenderLayout renders the HTML preview of a layout with the built-in template
func (e *TemplateEngine) RenderLayout(ctx context.Context, layout *printing.Layout) (string, error) {
	if layout == nil || len(layout.Pages) == 0 {
		return "", NewRenderError(ErrCodeInvalidLayout, "layout has no pages", nil)
	}
	tmpl := GetDefaultTemplateForVariant(layout.Spec.Variant)
	if tmpl == nil {
		return "", NewRenderError(ErrCodeInvalidLayout, "no template for variant "+layout.Spec.Variant.String(), nil)
	}
	content, err := LoadTemplateContent(tmpl.FilePath)
	if err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "failed to load template", err)
	}
	return e.RenderString(ctx, tmpl.FilePath, content, newHTMLDocument(layout))
}

// GetFuncMap returns a copy of the template function map
func (e *TemplateEngine) GetFuncMap() template.FuncMap {
	funcMap := make(template.FuncMap, len(e.funcMap))
	maps.Copy(funcMap, e.funcMap)
	return funcMap
}

// =============================================================================
// Template Functions
// =============================================================================

// formatPoints formats a length as CSS points
// Example: 20 -> "20pt", 595.2756 -> "595.28pt"
func formatPoints(v float64) template.CSS {
	return template.CSS(strconv.FormatFloat(v, 'f', -1, 64) + "pt")
}

func rowStyle(height float64) template.CSS {
	if height <= 0 {
		return ""
	}
	return template.CSS("height: ") + formatPoints(height)
}

func colStyle(width float64) template.CSS {
	if width <= 0 {
		return ""
	}
	return template.CSS("width: ") + formatPoints(width)
}

func lineStyle(l printing.TextLine) template.CSS {
	var parts []string
	if l.Bold {
		parts = append(parts, "font-weight: bold")
	}
	if l.Size > 0 {
		parts = append(parts, "font-size: "+string(formatPoints(l.Size)))
	}
	return template.CSS(strings.Join(parts, "; "))
}

// cellStyle converts alignment, padding and borders to inline CSS
func cellStyle(c printing.Cell) template.CSS {
	parts := []string{"text-align: " + alignCSS(c.Align)}
	if c.PadLeft > 0 {
		parts = append(parts, "padding-left: "+string(formatPoints(c.PadLeft+cellMargin)))
	}
	if c.PadRight > 0 {
		parts = append(parts, "padding-right: "+string(formatPoints(c.PadRight+cellMargin)))
	}
	edges := []struct {
		edge printing.Border
		name string
	}{
		{printing.BorderLeft, "left"},
		{printing.BorderTop, "top"},
		{printing.BorderRight, "right"},
		{printing.BorderBottom, "bottom"},
	}
	for _, e := range edges {
		if c.Border.Has(e.edge) {
			parts = append(parts, fmt.Sprintf("border-%s: %gpt solid #000", e.name, float64(ruleWidth)))
		}
	}
	return template.CSS(strings.Join(parts, "; "))
}

func alignCSS(a printing.Align) string {
	switch a {
	case printing.AlignCenter:
		return "center"
	case printing.AlignRight:
		return "right"
	default:
		return "left"
	}
}

// formatDate formats a time value as dd/mm/yyyy
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// titleCase converts string to title case using proper Unicode handling
func titleCase(s string) string {
	caser := cases.Title(language.Indonesian)
	return caser.String(s)
}

func defaultFunc(val, def string) string {
	if strings.TrimSpace(val) == "" {
		return def
	}
	return val
}
