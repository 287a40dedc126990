package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	printingapp "github.com/erp/suratjalan/internal/application/printing"
	domain "github.com/erp/suratjalan/internal/domain/printing"
	infra "github.com/erp/suratjalan/internal/infrastructure/printing"
	"github.com/erp/suratjalan/internal/interfaces/http/dto"
	"github.com/erp/suratjalan/internal/interfaces/http/middleware"
)

// failingEngine always fails with the configured error
type failingEngine struct {
	err error
}

func (e *failingEngine) Name() string { return "failing" }

func (e *failingEngine) Render(context.Context, *domain.Layout) (*infra.RenderResult, error) {
	return nil, e.err
}

func (e *failingEngine) Close() error { return nil }

func newPrintRouter(engine infra.PDFRenderer) *gin.Engine {
	svc := printingapp.NewPrintService(infra.NewRenderer(engine, nil), zap.NewNop())
	h := NewPrintHandler(svc)

	r := gin.New()
	r.Use(middleware.RequestID())
	api := r.Group("/api/v1")
	PrintRoutes(h, middleware.BodyLimit(1<<20)).RegisterRoutes(api)
	return r
}

func newFpdfRouter() *gin.Engine {
	return newPrintRouter(infra.NewFpdfRenderer(infra.FpdfConfig{}))
}

func postJSON(r http.Handler, path string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(http.MethodPost, path, nil)
	} else {
		req = httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp
}

func TestPrintHandler_Base64_EmptyBodyRendersSample(t *testing.T) {
	r := newFpdfRouter()

	tests := []struct {
		path string
		body []byte
	}{
		{"/api/v1/print/surat-jalan/single-page/base64", nil},
		{"/api/v1/print/surat-jalan/multi-page/base64", nil},
		{"/api/v1/print/surat-jalan/single-page/base64", []byte("  \n")},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := postJSON(r, tt.path, tt.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var resp printingapp.Base64Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "surat-jalan.pdf", resp.FileName)
			assert.Equal(t, "application/pdf", resp.ContentType)

			pdf, err := base64.StdEncoding.DecodeString(resp.Base64)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

			// The base64 endpoints answer without the success envelope
			assert.NotContains(t, w.Body.String(), `"success"`)
		})
	}
}

func TestPrintHandler_Base64_IsDeterministic(t *testing.T) {
	r := newFpdfRouter()

	first := postJSON(r, "/api/v1/print/surat-jalan/multi-page/base64", nil)
	second := postJSON(r, "/api/v1/print/surat-jalan/multi-page/base64", nil)

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestPrintHandler_Base64_WithDocument(t *testing.T) {
	r := newFpdfRouter()

	req := printingapp.SampleRequest(domain.VariantSinglePage)
	req.Number = "SJ/TEST/001"
	req.Items = req.Items[:1]

	w := postJSON(r, "/api/v1/print/surat-jalan/single-page/base64", mustJSON(t, req))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp printingapp.Base64Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Base64)
}

func TestPrintHandler_GeneratePDF(t *testing.T) {
	r := newFpdfRouter()

	w := postJSON(r, "/api/v1/print/surat-jalan/multi-page/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="surat-jalan.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "2", w.Header().Get(HeaderPageCount))
	assert.Equal(t, "fpdf", w.Header().Get(HeaderEngine))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestPrintHandler_GeneratePDF_UnknownVariant(t *testing.T) {
	r := newFpdfRouter()

	w := postJSON(r, "/api/v1/print/surat-jalan/landscape/pdf", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrCodeInvalidVariant, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.RequestID)
}

func TestPrintHandler_InvalidJSON(t *testing.T) {
	r := newFpdfRouter()

	w := postJSON(r, "/api/v1/print/surat-jalan/single-page/base64", []byte(`{"number":`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
}

func TestPrintHandler_ValidationError(t *testing.T) {
	r := newFpdfRouter()

	valid := printingapp.SampleRequest(domain.VariantSinglePage)
	require.Equal(t, http.StatusOK, postJSON(r, "/api/v1/print/surat-jalan/single-page/base64", mustJSON(t, valid)).Code)

	req := printingapp.SampleRequest(domain.VariantSinglePage)
	req.Number = ""
	req.Items[2].No = 0

	w := postJSON(r, "/api/v1/print/surat-jalan/single-page/base64", mustJSON(t, req))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)

	fields := make([]string, 0, len(resp.Error.Details))
	for _, d := range resp.Error.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"number", "items[2].no"}, fields)
}

func TestPrintHandler_InvalidDocument(t *testing.T) {
	r := newFpdfRouter()

	req := printingapp.SampleRequest(domain.VariantSinglePage)
	req.Items[0].Quantity = req.Items[0].Quantity.Neg()

	w := postJSON(r, "/api/v1/print/surat-jalan/single-page/pdf", mustJSON(t, req))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrCodeInvalidDocument, resp.Error.Code)
	require.NotEmpty(t, resp.Error.Details)
	assert.True(t, strings.HasPrefix(resp.Error.Details[0].Field, "items[0]"))
}

func TestPrintHandler_RenderFailure(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "engine failure",
			err:        infra.NewRenderError(infra.ErrCodeRenderFailed, "fpdf drawing failed", nil),
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeRenderFailed,
		},
		{
			name:       "timeout",
			err:        infra.NewRenderError(infra.ErrCodeRenderTimeout, "PDF rendering timed out", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   dto.ErrCodeRenderTimeout,
		},
		{
			name:       "browser gone",
			err:        infra.NewRenderError(infra.ErrCodeEngineUnavailable, "browser context was closed", nil),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   dto.ErrCodeEngineUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newPrintRouter(&failingEngine{err: tt.err})

			w := postJSON(r, "/api/v1/print/surat-jalan/multi-page/base64", nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestPrintHandler_PayloadTooLarge(t *testing.T) {
	svc := printingapp.NewPrintService(infra.NewRenderer(infra.NewFpdfRenderer(infra.FpdfConfig{}), nil), nil)
	r := gin.New()
	PrintRoutes(NewPrintHandler(svc), middleware.BodyLimit(64)).RegisterRoutes(r.Group("/api/v1"))

	body := mustJSON(t, printingapp.SampleRequest(domain.VariantSinglePage))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/print/surat-jalan/single-page/base64", bytes.NewReader(body))
	req.ContentLength = -1 // chunked body bypasses the Content-Length precheck
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrCodePayloadTooLarge, resp.Error.Code)
}

func TestPrintHandler_Preview(t *testing.T) {
	r := newFpdfRouter()

	w := postJSON(r, "/api/v1/print/surat-jalan/multi-page/preview", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool                        `json:"success"`
		Data    printingapp.PreviewResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Data.PageCount)
	assert.Equal(t, "multi-page", resp.Data.Variant)
	assert.Contains(t, resp.Data.HTML, "260000005/KR/SJ/I/2026")
}

func TestPrintHandler_GetSample(t *testing.T) {
	r := newFpdfRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/print/surat-jalan/sample/multi-page", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                        `json:"success"`
		Data    printingapp.DocumentRequest `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data.Items, printingapp.SampleMultiPageItems)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/print/surat-jalan/sample/a5", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPrintRoutes(t *testing.T) {
	group := PrintRoutes(NewPrintHandler(nil))

	assert.Equal(t, "print", group.Name())
	paths := make([]string, 0)
	for _, r := range group.Routes() {
		paths = append(paths, r.Method+" "+r.Path)
	}
	assert.ElementsMatch(t, []string{
		"POST /print/surat-jalan/single-page/base64",
		"POST /print/surat-jalan/multi-page/base64",
		"POST /print/surat-jalan/:variant/pdf",
		"POST /print/surat-jalan/:variant/preview",
		"GET /print/surat-jalan/sample/:variant",
	}, paths)
}
