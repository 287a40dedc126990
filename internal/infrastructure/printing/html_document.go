package printing

import (
	"html/template"

	"github.com/erp/suratjalan/internal/domain/printing"
)

// htmlDocument is the view model bound to the HTML template. Widths are
// resolved here so the template holds no layout arithmetic.
type htmlDocument struct {
	Title        string
	Width        float64
	Height       float64
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64
	FontSize     float64
	Pages        []htmlPage
}

type htmlPage struct {
	Number        int
	HeaderColumns []float64
	Header        []htmlRow
	Intro         []printing.TextLine
	Dates         []htmlRow
	Columns       []float64
	TableHeader   htmlRow
	Rows          []htmlRow
	Footer        htmlRow
	Closing       printing.TextLine
	Signatures    []htmlRow
}

type htmlRow struct {
	Kind   string
	Height float64
	Cells  []htmlCell
}

type htmlCell struct {
	Lines []printing.TextLine
	Span  int
	Style template.CSS
}

func newHTMLDocument(layout *printing.Layout) htmlDocument {
	geo := layout.Spec.Geometry
	doc := htmlDocument{
		Title:        layout.Metadata.Title,
		Width:        geo.Width(),
		Height:       geo.Height(),
		MarginTop:    geo.Margins.Top,
		MarginRight:  geo.Margins.Right,
		MarginBottom: geo.Margins.Bottom,
		MarginLeft:   geo.Margins.Left,
		FontSize:     geo.FontSize,
		Pages:        make([]htmlPage, 0, len(layout.Pages)),
	}

	for _, p := range layout.Pages {
		page := htmlPage{
			Number:        p.Number,
			HeaderColumns: p.Header.Widths(geo.ContentWidth()),
			Header:        htmlGridRows(p.Header),
			Intro:         p.Intro,
			Dates:         htmlGridRows(p.Dates),
			Columns:       make([]float64, len(p.Table.Columns)),
			TableHeader:   newHTMLRow("header", p.Table.Header.Cells, p.Table.Header.MinHeight),
			Footer:        newHTMLRow("footer", p.Table.Footer.Cells, p.Table.Footer.MinHeight),
			Closing:       p.Closing,
			Signatures:    htmlGridRows(p.Signatures),
		}
		for i, c := range p.Table.Columns {
			page.Columns[i] = c.Width
		}
		for _, r := range p.Table.Rows {
			page.Rows = append(page.Rows, newHTMLRow(string(r.Kind), r.Cells, r.MinHeight))
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc
}

func htmlGridRows(g printing.Grid) []htmlRow {
	rows := make([]htmlRow, len(g.Rows))
	for i, r := range g.Rows {
		rows[i] = newHTMLRow("grid", r.Cells, r.MinHeight)
	}
	return rows
}

func newHTMLRow(kind string, cells []printing.Cell, height float64) htmlRow {
	row := htmlRow{Kind: kind, Height: height, Cells: make([]htmlCell, len(cells))}
	for i, c := range cells {
		row.Cells[i] = htmlCell{
			Lines: c.Lines,
			Span:  max(c.Span, 1),
			Style: cellStyle(c),
		}
	}
	return row
}
