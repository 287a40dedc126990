package printing

import (
	"strings"
	"time"

	"github.com/erp/suratjalan/internal/domain/shipping"
)

// TextLine is one line of text with its own weight and size.
// Size zero means the page base font size.
type TextLine struct {
	Text string  `json:"text"`
	Bold bool    `json:"bold,omitempty"`
	Size float64 `json:"size,omitempty"`
}

// Cell is a table or grid cell
type Cell struct {
	Lines    []TextLine `json:"lines"`
	Align    Align      `json:"align"`
	Border   Border     `json:"border"`
	Span     int        `json:"span"` // number of columns covered, at least 1
	PadLeft  float64    `json:"padLeft,omitempty"`
	PadRight float64    `json:"padRight,omitempty"`
}

// Text returns the cell lines joined by newlines
func (c Cell) Text() string {
	parts := make([]string, len(c.Lines))
	for i, l := range c.Lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

// IsEmpty reports whether the cell carries no visible text
func (c Cell) IsEmpty() bool {
	return strings.TrimSpace(c.Text()) == ""
}

// GridRow is a row of cells with a minimum height
type GridRow struct {
	Cells     []Cell  `json:"cells"`
	MinHeight float64 `json:"minHeight,omitempty"`
}

// Grid is an unruled table whose columns share the content width by weight
type Grid struct {
	Weights []float64 `json:"weights"`
	Rows    []GridRow `json:"rows"`
}

// Widths resolves the column weights against the available width
func (g Grid) Widths(total float64) []float64 {
	var sum float64
	for _, w := range g.Weights {
		sum += w
	}
	widths := make([]float64, len(g.Weights))
	if sum == 0 {
		return widths
	}
	for i, w := range g.Weights {
		widths[i] = total * w / sum
	}
	return widths
}

// Column describes one column of the item table.
// Width zero marks the flexible column that takes the remaining space.
type Column struct {
	Title string  `json:"title"`
	Width float64 `json:"width"`
}

// Row is one row of the item table
type Row struct {
	Kind      RowKind            `json:"kind"`
	Item      *shipping.LineItem `json:"item,omitempty"`
	Cells     []Cell             `json:"cells"`
	MinHeight float64            `json:"minHeight"`
}

// Table is the ruled item table of a page
type Table struct {
	Columns []Column `json:"columns"`
	Header  GridRow  `json:"header"`
	Rows    []Row    `json:"rows"`
	Footer  GridRow  `json:"footer"`
}

// Widths resolves the column widths against the available width
func (t Table) Widths(total float64) []float64 {
	var fixed float64
	flexible := 0
	for _, c := range t.Columns {
		if c.Width > 0 {
			fixed += c.Width
		} else {
			flexible++
		}
	}
	widths := make([]float64, len(t.Columns))
	remaining := total - fixed
	if remaining < 0 {
		remaining = 0
	}
	for i, c := range t.Columns {
		if c.Width > 0 {
			widths[i] = c.Width
		} else {
			widths[i] = remaining / float64(flexible)
		}
	}
	return widths
}

// Items returns the line items of the table in row order
func (t Table) Items() []shipping.LineItem {
	items := make([]shipping.LineItem, 0, len(t.Rows))
	for _, r := range t.Rows {
		if r.Kind == RowItem && r.Item != nil {
			items = append(items, *r.Item)
		}
	}
	return items
}

// BlankRows returns the number of padding rows
func (t Table) BlankRows() int {
	n := 0
	for _, r := range t.Rows {
		if r.Kind == RowBlank {
			n++
		}
	}
	return n
}

// Page is one logical sheet of a delivery note
type Page struct {
	Number     int        `json:"number"`
	Header     Grid       `json:"header"`
	Intro      []TextLine `json:"intro"`
	Dates      Grid       `json:"dates"`
	Table      Table      `json:"table"`
	Closing    TextLine   `json:"closing"`
	Signatures Grid       `json:"signatures"`
}

// Metadata is written into the document information of the PDF
type Metadata struct {
	Title     string    `json:"title"`
	Subject   string    `json:"subject"`
	Author    string    `json:"author"`
	Creator   string    `json:"creator"`
	CreatedAt time.Time `json:"createdAt"`
}

// Layout is the full page sequence of a delivery note
type Layout struct {
	Spec     LayoutSpec `json:"spec"`
	Metadata Metadata   `json:"metadata"`
	Pages    []Page     `json:"pages"`
}

// Items returns every line item in page order
func (l *Layout) Items() []shipping.LineItem {
	var items []shipping.LineItem
	for _, p := range l.Pages {
		items = append(items, p.Table.Items()...)
	}
	return items
}

// PageCount returns the number of logical pages
func (l *Layout) PageCount() int {
	return len(l.Pages)
}
