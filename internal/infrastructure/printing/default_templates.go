package printing

import (
	"embed"
	"fmt"

	"github.com/erp/suratjalan/internal/domain/printing"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultTemplate represents a built-in HTML template configuration
type DefaultTemplate struct {
	Variant     printing.Variant
	Name        string
	Description string
	PaperSize   printing.PaperSize
	FilePath    string // Path within embed.FS
}

// GetDefaultTemplates returns all default template configurations
func GetDefaultTemplates() []DefaultTemplate {
	return []DefaultTemplate{
		{
			Variant:     printing.VariantSinglePage,
			Name:        "Surat Jalan - 1 lembar",
			Description: "Surat jalan satu lembar, tabel 11 baris dengan catatan orderan dan expedisi",
			PaperSize:   printing.PaperSizeSuratJalan,
			FilePath:    "templates/surat_jalan.html",
		},
		{
			Variant:     printing.VariantMultiPage,
			Name:        "Surat Jalan - multi lembar",
			Description: "Surat jalan 14 barang per lembar, kop dan tanda tangan diulang tiap lembar",
			PaperSize:   printing.PaperSizeSuratJalan,
			FilePath:    "templates/surat_jalan.html",
		},
	}
}

// LoadTemplateContent loads the HTML content for a default template
func LoadTemplateContent(filePath string) (string, error) {
	content, err := templateFS.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read template file %s: %w", filePath, err)
	}
	return string(content), nil
}

// GetDefaultTemplateForVariant finds the default template for a layout variant
func GetDefaultTemplateForVariant(variant printing.Variant) *DefaultTemplate {
	for _, t := range GetDefaultTemplates() {
		if t.Variant == variant {
			return &t
		}
	}
	return nil
}
