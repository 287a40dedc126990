package handler

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	printingapp "github.com/erp/suratjalan/internal/application/printing"
	"github.com/erp/suratjalan/internal/domain/printing"
	"github.com/erp/suratjalan/internal/interfaces/http/dto"
	"github.com/erp/suratjalan/internal/interfaces/http/middleware"
)

// Response headers describing a rendered PDF
const (
	HeaderPageCount = "X-Page-Count"
	HeaderEngine    = "X-Render-Engine"
)

// PrintHandler handles delivery note print endpoints
type PrintHandler struct {
	BaseHandler
	printService *printingapp.PrintService
}

// NewPrintHandler creates a new PrintHandler
func NewPrintHandler(printService *printingapp.PrintService) *PrintHandler {
	return &PrintHandler{
		printService: printService,
	}
}

// SinglePageBase64 renders the single-page variant as base64.
// An empty body renders the built-in sample document.
func (h *PrintHandler) SinglePageBase64(c *gin.Context) {
	h.base64(c, printing.VariantSinglePage)
}

// MultiPageBase64 renders the multi-page variant as base64.
// An empty body renders the built-in sample document.
func (h *PrintHandler) MultiPageBase64(c *gin.Context) {
	h.base64(c, printing.VariantMultiPage)
}

// base64 answers with the bare Base64Response, without the success envelope,
// so existing clients decoding {fileName, contentType, base64} keep working.
func (h *PrintHandler) base64(c *gin.Context, variant printing.Variant) {
	req, ok := h.bindDocument(c)
	if !ok {
		return
	}

	resp, err := h.printService.GenerateBase64(c.Request.Context(), variant.String(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GeneratePDF streams the delivery note of the variant in the path as a PDF attachment
func (h *PrintHandler) GeneratePDF(c *gin.Context) {
	req, ok := h.bindDocument(c)
	if !ok {
		return
	}

	result, err := h.printService.GeneratePDF(c.Request.Context(), c.Param("variant"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Header(HeaderPageCount, strconv.Itoa(result.PageCount))
	c.Header(HeaderEngine, result.Engine)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// Preview returns the HTML preview of a delivery note
func (h *PrintHandler) Preview(c *gin.Context) {
	req, ok := h.bindDocument(c)
	if !ok {
		return
	}

	resp, err := h.printService.Preview(c.Request.Context(), c.Param("variant"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetSample returns the sample delivery note of a variant
func (h *PrintHandler) GetSample(c *gin.Context) {
	sample, err := h.printService.Sample(c.Param("variant"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sample)
}

// bindDocument reads the optional document body.
// A blank body yields a nil request, which the service replaces by the sample.
func (h *PrintHandler) bindDocument(c *gin.Context) (*printingapp.DocumentRequest, bool) {
	if c.Request.Body == nil {
		return nil, true
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, true
	}

	var req printingapp.DocumentRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		if details := middleware.ValidationDetails(err); details != nil {
			h.ValidationError(c, details)
			return nil, false
		}
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid JSON body: "+err.Error())
		return nil, false
	}
	return &req, true
}
