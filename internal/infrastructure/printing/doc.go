// Package printing provides the PDF engines that draw delivery note layouts.
//
// This package contains:
// - PDFRenderer interface implemented by every engine
// - FpdfRenderer, the default engine, which draws layouts directly with
// go-pdf/fpdf and produces byte-identical output for identical input
// - ChromedpRenderer, which prints the HTML preview through headless Chrome
// - TemplateEngine, which turns a layout into the HTML preview
// - Renderer, which ties a document, a variant and an engine together
//
// Example usage:
//
//	engine := NewFpdfRenderer(FpdfConfig{Compress: true})
//	renderer := NewRenderer(engine, zap.NewNop())
//
//	result, err := renderer.Render(ctx, doc, printing.VariantSinglePage)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Generated PDF: %d bytes, %d pages\n", len(result.PDFData), result.PageCount)
package printing
