package printing

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/erp/suratjalan/internal/domain/printing"
)

const (
	fpdfEngineName  = "fpdf"
	fpdfFontFamily  = "Helvetica"
	defaultProducer = "suratjalan"

	lineSpacing = 1.15 // line height as a multiple of the font size
	blockGap    = 6    // vertical gap between header, intro and table
	ruleWidth   = 1
	cellMargin  = 1.5

	fitTolerance = 0.01 // absorbs float error when summed heights meet the bottom
)

// fallbackCreationDate is used when a layout carries no creation date, so
// output never depends on the wall clock.
var fallbackCreationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// FpdfConfig contains configuration for the fpdf renderer
type FpdfConfig struct {
	// Compress enables zlib compression of page content streams
	Compress bool
	// Producer is written to the PDF document information
	Producer string
	// Logger for debug output
	Logger *zap.Logger
}

// FpdfRenderer draws layouts with go-pdf/fpdf using the core Helvetica font.
// Each call builds a fresh document, so the renderer is safe for concurrent use.
type FpdfRenderer struct {
	config FpdfConfig
	logger *zap.Logger
}

// NewFpdfRenderer creates a new fpdf-based PDF renderer
func NewFpdfRenderer(config FpdfConfig) *FpdfRenderer {
	if config.Producer == "" {
		config.Producer = defaultProducer
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FpdfRenderer{config: config, logger: logger}
}

// Name returns the engine name
func (r *FpdfRenderer) Name() string {
	return fpdfEngineName
}

// Render draws every page of the layout. A page whose content is taller than
// the sheet continues on a follow-up sheet with the table header repeated.
// Layouts that chunk their items also repeat the note header and the
// signature block on every follow-up sheet.
func (r *FpdfRenderer) Render(ctx context.Context, layout *printing.Layout) (*RenderResult, error) {
	if layout == nil || len(layout.Pages) == 0 {
		return nil, NewRenderError(ErrCodeInvalidLayout, "layout has no pages", nil)
	}
	if err := layout.Spec.Validate(); err != nil {
		return nil, NewRenderError(ErrCodeInvalidLayout, "layout spec is invalid", err)
	}

	startTime := time.Now()
	geo := layout.Spec.Geometry

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: geo.Width(), Ht: geo.Height()},
	})
	pdf.SetMargins(geo.Margins.Left, geo.Margins.Top, geo.Margins.Right)
	pdf.SetAutoPageBreak(false, geo.Margins.Bottom)
	pdf.SetCompression(r.config.Compress)
	pdf.SetCatalogSort(true)
	pdf.SetLineWidth(ruleWidth)
	pdf.SetCellMargin(cellMargin)

	created := layout.Metadata.CreatedAt
	if created.IsZero() {
		created = fallbackCreationDate
	}
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
	pdf.SetTitle(layout.Metadata.Title, true)
	pdf.SetSubject(layout.Metadata.Subject, true)
	pdf.SetAuthor(layout.Metadata.Author, true)
	pdf.SetCreator(layout.Metadata.Creator, true)
	pdf.SetProducer(r.config.Producer, true)

	d := &fpdfDrawer{
		pdf: pdf,
		geo: geo,
		enc: encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()),
	}
	repeat := layout.Spec.RepeatsPageChrome()
	for _, page := range layout.Pages {
		if err := ctx.Err(); err != nil {
			return nil, contextError(ctx, err)
		}
		if repeat {
			d.drawChromedPage(page)
		} else {
			d.drawPage(page)
		}
		if pdf.Err() {
			break
		}
	}
	if pdf.Err() {
		return nil, NewRenderError(ErrCodeRenderFailed, "fpdf drawing failed", pdf.Error())
	}

	pageCount := pdf.PageCount()
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "fpdf output failed", err)
	}

	renderDuration := time.Since(startTime)
	r.logger.Debug("PDF rendered",
		zap.String("engine", fpdfEngineName),
		zap.Int("bytes", buf.Len()),
		zap.Int("pages", pageCount),
		zap.Duration("duration", renderDuration))

	return &RenderResult{
		PDFData:        buf.Bytes(),
		PageCount:      pageCount,
		Engine:         fpdfEngineName,
		RenderDuration: renderDuration,
	}, nil
}

// Close releases resources held by the renderer
func (r *FpdfRenderer) Close() error {
	return nil
}

// fpdfDrawer holds the state of one render call
type fpdfDrawer struct {
	pdf *fpdf.Fpdf
	geo printing.PageGeometry
	enc *encoding.Encoder

	fontStyle string
	fontSize  float64

	// chrome is the page whose header and signatures repeat on every sheet
	// it spans; nil when the layout draws them once.
	chrome *sheetChrome
	// inChrome is set while the repeated blocks themselves are drawn
	inChrome bool
}

// sheetChrome holds the blocks repeated on each sheet of a logical page and
// the height kept free for the signatures at the bottom of the sheet.
type sheetChrome struct {
	page    printing.Page
	reserve float64
}

// wrappedLine is a single output line of a cell after wrapping
type wrappedLine struct {
	text   string
	style  printing.TextLine
	height float64
}

// bottom is the lowest y body content may reach on the current sheet
func (d *fpdfDrawer) bottom() float64 {
	b := d.sheetBottom()
	if d.chrome != nil && !d.inChrome {
		b -= d.chrome.reserve
	}
	return b
}

func (d *fpdfDrawer) sheetBottom() float64 {
	return d.geo.Height() - d.geo.Margins.Bottom
}

func (d *fpdfDrawer) left() float64 {
	return d.geo.Margins.Left
}

// encode converts UTF-8 text to the cp1252 bytes the core fonts expect
func (d *fpdfDrawer) encode(s string) string {
	out, err := d.enc.String(s)
	if err != nil {
		return s
	}
	return out
}

// setFont selects the font of a line and returns its line height
func (d *fpdfDrawer) setFont(l printing.TextLine) float64 {
	size := l.Size
	if size == 0 {
		size = d.geo.FontSize
	}
	style := ""
	if l.Bold {
		style = "B"
	}
	if style != d.fontStyle || size != d.fontSize {
		d.pdf.SetFont(fpdfFontFamily, style, size)
		d.fontStyle, d.fontSize = style, size
	}
	return size * lineSpacing
}

// wrap breaks the cell text into lines that fit width w
func (d *fpdfDrawer) wrap(c printing.Cell, w float64) ([]wrappedLine, float64) {
	avail := w - c.PadLeft - c.PadRight
	var lines []wrappedLine
	var height float64
	for _, l := range c.Lines {
		lh := d.setFont(l)
		for _, part := range strings.Split(l.Text, "\n") {
			encoded := d.encode(part)
			pieces := []string{encoded}
			if strings.TrimSpace(encoded) != "" && avail > 2*cellMargin {
				split := d.pdf.SplitLines([]byte(encoded), avail)
				if len(split) > 0 {
					pieces = pieces[:0]
					for _, p := range split {
						pieces = append(pieces, string(p))
					}
				}
			}
			for _, p := range pieces {
				lines = append(lines, wrappedLine{text: p, style: l, height: lh})
				height += lh
			}
		}
	}
	return lines, height
}

// cellWidths expands per-column widths into per-cell widths honoring spans
func cellWidths(cells []printing.Cell, columns []float64) []float64 {
	widths := make([]float64, len(cells))
	col := 0
	for i, c := range cells {
		span := max(c.Span, 1)
		for j := 0; j < span && col < len(columns); j++ {
			widths[i] += columns[col]
			col++
		}
	}
	return widths
}

// measureRow returns the height a row of cells needs
func (d *fpdfDrawer) measureRow(cells []printing.Cell, widths []float64, minHeight float64) float64 {
	h := minHeight
	for i, c := range cells {
		_, ch := d.wrap(c, widths[i])
		h = max(h, ch)
	}
	return h
}

// drawRow draws a row of cells at the current position and advances below it.
// Text is centered vertically when center is set, otherwise top aligned.
func (d *fpdfDrawer) drawRow(cells []printing.Cell, widths []float64, height float64, center bool) {
	pdf := d.pdf
	y := pdf.GetY()
	x := d.left()
	for i, c := range cells {
		w := widths[i]
		pdf.SetXY(x, y)
		pdf.CellFormat(w, height, "", c.Border.String(), 0, "", false, 0, "")

		lines, contentHeight := d.wrap(c, w)
		ty := y
		if center {
			ty += (height - contentHeight) / 2
		}
		for _, l := range lines {
			d.setFont(l.style)
			pdf.SetXY(x+c.PadLeft, ty)
			pdf.CellFormat(w-c.PadLeft-c.PadRight, l.height, l.text, "", 0, string(c.Align), false, 0, "")
			ty += l.height
		}
		x += w
	}
	pdf.SetXY(d.left(), y+height)
}

// fits reports whether height fits between the cursor and the bottom
func (d *fpdfDrawer) fits(height float64) bool {
	return d.pdf.GetY()+height <= d.bottom()+fitTolerance
}

// ensureSpace starts a new sheet when height does not fit below the cursor
func (d *fpdfDrawer) ensureSpace(height float64) bool {
	if d.fits(height) {
		return false
	}
	d.breakSheet()
	return true
}

// breakSheet moves to a new sheet. With repeated chrome the current sheet
// gets its signatures and the new one its header before body content resumes.
func (d *fpdfDrawer) breakSheet() {
	repeat := d.chrome != nil && !d.inChrome
	if repeat {
		d.drawSheetFooter()
	}
	d.pdf.AddPage()
	d.pdf.SetXY(d.left(), d.geo.Margins.Top)
	if repeat {
		d.drawSheetHeader()
	}
}

func (d *fpdfDrawer) drawGrid(g printing.Grid) {
	columns := g.Widths(d.geo.ContentWidth())
	for _, row := range g.Rows {
		widths := cellWidths(row.Cells, columns)
		h := d.measureRow(row.Cells, widths, row.MinHeight)
		d.ensureSpace(h)
		d.drawRow(row.Cells, widths, h, false)
	}
}

func (d *fpdfDrawer) drawLine(l printing.TextLine) {
	cell := printing.Cell{Lines: []printing.TextLine{l}, Align: printing.AlignLeft, Span: 1}
	widths := []float64{d.geo.ContentWidth()}
	h := d.measureRow([]printing.Cell{cell}, widths, 0)
	d.ensureSpace(h)
	d.drawRow([]printing.Cell{cell}, widths, h, false)
}

// gridHeight measures a whole grid so it can be kept on one sheet
func (d *fpdfDrawer) gridHeight(g printing.Grid) float64 {
	columns := g.Widths(d.geo.ContentWidth())
	var total float64
	for _, row := range g.Rows {
		total += d.measureRow(row.Cells, cellWidths(row.Cells, columns), row.MinHeight)
	}
	return total
}

func (d *fpdfDrawer) drawTable(t printing.Table) {
	columns := t.Widths(d.geo.ContentWidth())
	headerWidths := cellWidths(t.Header.Cells, columns)
	headerHeight := d.measureRow(t.Header.Cells, headerWidths, t.Header.MinHeight)

	d.ensureSpace(headerHeight)
	d.drawRow(t.Header.Cells, headerWidths, headerHeight, true)

	for _, row := range t.Rows {
		widths := cellWidths(row.Cells, columns)
		h := d.measureRow(row.Cells, widths, row.MinHeight)
		if !d.fits(h) {
			d.closeTable(columns)
			d.ensureSpace(h)
			d.drawRow(t.Header.Cells, headerWidths, headerHeight, true)
		}
		d.drawRow(row.Cells, widths, h, true)
	}

	footerWidths := cellWidths(t.Footer.Cells, columns)
	footerHeight := d.measureRow(t.Footer.Cells, footerWidths, t.Footer.MinHeight)
	if !d.fits(footerHeight) {
		d.closeTable(columns)
		d.ensureSpace(footerHeight)
		d.drawRow(t.Header.Cells, headerWidths, headerHeight, true)
	}
	d.drawRow(t.Footer.Cells, footerWidths, footerHeight, false)
}

// closeTable rules the bottom edge of a table interrupted by a sheet break
func (d *fpdfDrawer) closeTable(columns []float64) {
	var total float64
	for _, w := range columns {
		total += w
	}
	y := d.pdf.GetY()
	d.pdf.Line(d.left(), y, d.left()+total, y)
}

// drawHead draws the note header, intro and dates at the cursor
func (d *fpdfDrawer) drawHead(p printing.Page) {
	d.drawGrid(p.Header)
	d.pdf.SetY(d.pdf.GetY() + blockGap)

	for _, l := range p.Intro {
		d.drawLine(l)
	}
	d.drawGrid(p.Dates)
	d.pdf.SetY(d.pdf.GetY() + blockGap)
}

// drawPage draws a logical page whose header and signatures appear once.
// Overflowing rows continue on follow-up sheets below a repeated column header.
func (d *fpdfDrawer) drawPage(p printing.Page) {
	d.pdf.AddPage()
	d.pdf.SetXY(d.left(), d.geo.Margins.Top)
	d.setFont(printing.TextLine{})

	d.drawHead(p)
	d.drawTable(p.Table)
	d.drawLine(p.Closing)

	d.ensureSpace(d.gridHeight(p.Signatures))
	d.drawGrid(p.Signatures)
}

// drawChromedPage draws a logical page whose header sits at the top and whose
// signatures sit at the bottom of every sheet it spans.
func (d *fpdfDrawer) drawChromedPage(p printing.Page) {
	d.pdf.AddPage()
	d.pdf.SetXY(d.left(), d.geo.Margins.Top)
	d.setFont(printing.TextLine{})

	d.chrome = &sheetChrome{page: p, reserve: d.gridHeight(p.Signatures)}
	defer func() { d.chrome = nil }()

	d.drawSheetHeader()
	d.drawTable(p.Table)
	d.drawLine(p.Closing)
	d.drawSheetFooter()
}

func (d *fpdfDrawer) drawSheetHeader() {
	d.inChrome = true
	d.drawHead(d.chrome.page)
	d.inChrome = false
}

func (d *fpdfDrawer) drawSheetFooter() {
	d.inChrome = true
	d.pdf.SetXY(d.left(), d.sheetBottom()-d.chrome.reserve)
	d.drawGrid(d.chrome.page.Signatures)
	d.inChrome = false
}
