package printing

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/erp/suratjalan/internal/infrastructure/config"
)

// NewEngine builds the PDF engine named by cfg.Engine
func NewEngine(cfg config.PrintingConfig, logger *zap.Logger) (PDFRenderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Engine {
	case "", config.EngineFpdf:
		return NewFpdfRenderer(FpdfConfig{
			Compress: cfg.Compress,
			Logger:   logger.Named(fpdfEngineName),
		}), nil
	case config.EngineChromedp:
		return NewChromedpRenderer(&ChromedpConfig{
			DefaultTimeout: cfg.RenderTimeout,
			RemoteURL:      cfg.ChromeRemoteURL,
			NoSandbox:      cfg.ChromeNoSandbox,
			Logger:         logger.Named(chromedpEngineName),
		})
	default:
		return nil, fmt.Errorf("unknown PDF engine %q", cfg.Engine)
	}
}
