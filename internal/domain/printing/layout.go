package printing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/erp/suratjalan/internal/domain/shipping"
)

// Fixed text and geometry of the delivery note
const (
	Title         = "SURAT JALAN"
	Salutation    = "Dengan Hormat"
	ClosingLine   = "Atas perhatiannya kami ucapkan terima kasih"
	Creator       = "suratjalan"
	TitleFontSize = 16

	CellPadding           = 4
	SignatureSpacerHeight = 24
	SignatureNameHeight   = 14
)

// BlankSignatory fills the name row when a signatory is unknown, so the
// "( ... )" row keeps the width of a written name.
var BlankSignatory = strings.Repeat(" ", 32)

// ItemColumns are the item table columns; the description column is flexible
var ItemColumns = []Column{
	{Title: "NO", Width: 30},
	{Title: "JENIS & UKURAN BARANG"},
	{Title: "JUMLAH", Width: 60},
	{Title: "KET", Width: 50},
	{Title: "P1/P2/SISA", Width: 60},
}

// SignatureTitles are the roles of the signature block, left to right
var SignatureTitles = []string{"Kepala Gudang", "Staff Gudang", "Pengemudi", "Yang Menerima"}

// Chunk splits items into sequential, non-overlapping groups of size.
// The last group holds the remainder. A size of zero or less yields one
// group with every item. An empty input yields one empty group so that a
// note without items still prints a sheet.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) <= size {
		group := make([]T, len(items))
		copy(group, items)
		return [][]T{group}
	}
	groups := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		group := make([]T, end-start)
		copy(group, items[start:end])
		groups = append(groups, group)
	}
	return groups
}

// BuildLayout lays a document out according to spec.
// The result depends only on its arguments.
func BuildLayout(doc *shipping.Document, spec LayoutSpec) (*Layout, error) {
	if doc == nil {
		return nil, shipping.ErrInvalidDocument
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	groups := Chunk(doc.Items(), spec.ChunkSize)
	pages := make([]Page, 0, len(groups))
	for i, group := range groups {
		pages = append(pages, Page{
			Number:     i + 1,
			Header:     headerGrid(doc),
			Intro:      introLines(doc),
			Dates:      datesGrid(doc),
			Table:      itemTable(doc, group, spec),
			Closing:    TextLine{Text: ClosingLine},
			Signatures: signatureGrid(doc),
		})
	}

	return &Layout{
		Spec: spec,
		Metadata: Metadata{
			Title:     "Surat Jalan " + doc.Number(),
			Subject:   "DO No. " + doc.DONumber(),
			Author:    doc.DistributorName(),
			Creator:   Creator,
			CreatedAt: doc.SubmissionDate().Time(),
		},
		Pages: pages,
	}, nil
}

func textCell(align Align, lines ...TextLine) Cell {
	return Cell{Lines: lines, Align: align, Border: BorderNone, Span: 1}
}

func plain(s string) TextLine {
	return TextLine{Text: s}
}

func headerGrid(doc *shipping.Document) Grid {
	return Grid{
		Weights: []float64{2, 2.5},
		Rows: []GridRow{
			{Cells: []Cell{
				textCell(AlignLeft, TextLine{Text: Title, Bold: true, Size: TitleFontSize}),
				textCell(AlignLeft, plain("Dikirim ke: "+doc.Recipient())),
			}},
			{Cells: []Cell{
				textCell(AlignLeft, plain("No: "+doc.Number()), plain(doc.DistributorName())),
				textCell(AlignLeft, plain(doc.RecipientAddress())),
			}},
		},
	}
}

func introLines(doc *shipping.Document) []TextLine {
	return []TextLine{
		plain(Salutation),
		plain("Harap diterima barang-barang dibawah ini sesuai DO No. " + doc.DONumber()),
	}
}

func datesGrid(doc *shipping.Document) Grid {
	return Grid{
		Weights: []float64{3, 3, 3},
		Rows: []GridRow{{Cells: []Cell{
			textCell(AlignLeft, plain("Tanggal: "+doc.SubmissionDate().Format())),
			textCell(AlignLeft, plain("OP: "+doc.PONumber())),
			textCell(AlignLeft, plain("Tanggal Kirim: "+doc.DeliveryDate().Format())),
		}}},
	}
}

func itemTable(doc *shipping.Document, items []shipping.LineItem, spec LayoutSpec) Table {
	header := make([]Cell, len(ItemColumns))
	for i, c := range ItemColumns {
		header[i] = Cell{
			Lines:  []TextLine{{Text: c.Title, Bold: true}},
			Align:  AlignCenter,
			Border: BorderAll,
			Span:   1,
		}
	}

	rows := make([]Row, 0, max(len(items), spec.RowsPerPage))
	for i := range items {
		item := items[i]
		rows = append(rows, Row{
			Kind:      RowItem,
			Item:      &item,
			Cells:     itemCells(item),
			MinHeight: spec.RowHeight,
		})
	}
	for len(rows) < spec.RowsPerPage {
		rows = append(rows, Row{
			Kind:      RowBlank,
			Cells:     blankCells(),
			MinHeight: spec.RowHeight,
		})
	}

	return Table{
		Columns: ItemColumns,
		Header:  GridRow{Cells: header},
		Rows:    rows,
		Footer:  footerRow(doc, spec),
	}
}

func itemCells(item shipping.LineItem) []Cell {
	return []Cell{
		{Lines: []TextLine{plain(strconv.Itoa(item.No))}, Align: AlignCenter, Border: BorderSides, Span: 1},
		{Lines: []TextLine{plain(item.Description)}, Align: AlignLeft, Border: BorderSides, Span: 1, PadLeft: CellPadding},
		{Lines: []TextLine{plain(item.QuantityText())}, Align: AlignRight, Border: BorderSides, Span: 1, PadRight: CellPadding},
		{Lines: []TextLine{plain(item.Unit)}, Align: AlignCenter, Border: BorderSides, Span: 1},
		{Lines: []TextLine{plain(item.Remark)}, Align: AlignCenter, Border: BorderSides, Span: 1},
	}
}

func blankCells() []Cell {
	cells := make([]Cell, TableColumns)
	for i := range cells {
		cells[i] = Cell{Align: AlignLeft, Border: BorderSides, Span: 1}
	}
	return cells
}

// footerRow closes the table. The last footer cell spans whatever columns
// the preceding ones leave over. A note footer puts its text in the
// description column.
func footerRow(doc *shipping.Document, spec LayoutSpec) GridRow {
	n := spec.FooterColumns
	cells := make([]Cell, n)
	for i := range cells {
		cells[i] = Cell{Align: AlignLeft, Border: BorderSides | BorderBottom, Span: 1}
	}
	cells[n-1].Span = TableColumns - (n - 1)

	if spec.Footer == FooterNote {
		cells[1].Lines = []TextLine{
			plain("Orderan Merchant: " + doc.OrderDescription()),
			{Text: fmt.Sprintf("Expedisi: %s Rit: %d", doc.ExpeditionName(), doc.Trips()), Bold: true},
		}
		cells[1].PadLeft = CellPadding
	}
	return GridRow{Cells: cells, MinHeight: spec.RowHeight}
}

func signatureGrid(doc *shipping.Document) Grid {
	titles := make([]Cell, len(SignatureTitles))
	values := make([]Cell, len(SignatureTitles))
	spacers := make([]Cell, len(SignatureTitles))
	for i, title := range SignatureTitles {
		titles[i] = textCell(AlignCenter, plain(title))
		values[i] = textCell(AlignCenter, plain(""))
		spacers[i] = textCell(AlignCenter)
	}
	values[2] = textCell(AlignCenter, plain(doc.Vehicle()))

	names := []Cell{
		textCell(AlignCenter, plain(SignatoryName(doc.WarehouseHead()))),
		textCell(AlignCenter, plain(SignatoryName(doc.WarehouseStaff()))),
		textCell(AlignCenter, plain(SignatoryName(""))),
		textCell(AlignCenter, plain(SignatoryName(""))),
	}

	return Grid{
		Weights: []float64{1, 1, 1, 1},
		Rows: []GridRow{
			{Cells: titles},
			{Cells: values},
			{Cells: spacers, MinHeight: SignatureSpacerHeight},
			{Cells: names, MinHeight: SignatureNameHeight},
		},
	}
}

// SignatoryName formats a name row as "( name )"; a blank name becomes a
// fixed-width placeholder.
func SignatoryName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = BlankSignatory
	}
	return "( " + name + " )"
}
