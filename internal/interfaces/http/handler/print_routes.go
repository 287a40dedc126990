package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/erp/suratjalan/internal/interfaces/http/router"
)

// PrintRoutes creates the route group for delivery note endpoints
func PrintRoutes(handler *PrintHandler, middleware ...gin.HandlerFunc) *router.DomainGroup {
	group := router.NewDomainGroup("print", "/print/surat-jalan")
	group.Use(middleware...)

	// Fixed-variant endpoints answering with bare base64 JSON
	group.POST("/single-page/base64", handler.SinglePageBase64)
	group.POST("/multi-page/base64", handler.MultiPageBase64)

	group.POST("/:variant/pdf", handler.GeneratePDF)
	group.POST("/:variant/preview", handler.Preview)

	group.GET("/sample/:variant", handler.GetSample)

	return group
}

// SystemRoutes creates the route group for system endpoints under the API root
func SystemRoutes(handler *SystemHandler) *router.DomainGroup {
	group := router.NewDomainGroup("system", "")
	group.GET("/ping", handler.Ping)
	group.GET("/system/info", handler.GetSystemInfo)
	return group
}
