package printing

import (
	"fmt"

	"github.com/erp/suratjalan/internal/domain/shared"
)

// Table column count: NO | JENIS & UKURAN BARANG | JUMLAH | KET | P1/P2/SISA
const TableColumns = 5

// LayoutSpec parameterizes the single paginated-table routine shared by all
// variants. The two variants differ only in these values.
type LayoutSpec struct {
	Variant Variant `json:"variant"`

	// RowsPerPage is the padding floor: tables shorter than this are filled
	// with blank rows, longer tables are left as they are.
	RowsPerPage int `json:"rowsPerPage"`

	// ChunkSize is the number of items per sheet. Zero keeps every item on
	// a single sheet.
	ChunkSize int `json:"chunkSize"`

	Footer        FooterKind `json:"footer"`
	FooterColumns int        `json:"footerColumns"`

	// RowHeight is the minimum height of item and padding rows in points.
	RowHeight float64 `json:"rowHeight"`

	Geometry PageGeometry `json:"geometry"`
}

// DefaultGeometry is the 21cm x 14cm sheet with a 20pt margin and 9pt text
func DefaultGeometry() PageGeometry {
	return PageGeometry{
		Paper:    PaperSizeSuratJalan,
		Margins:  UniformMargins(20),
		FontSize: 9,
	}
}

// SinglePage returns the layout of the one-sheet delivery note
func SinglePage() LayoutSpec {
	return LayoutSpec{
		Variant:       VariantSinglePage,
		RowsPerPage:   11,
		ChunkSize:     0,
		Footer:        FooterNote,
		FooterColumns: TableColumns,
		RowHeight:     14,
		Geometry:      DefaultGeometry(),
	}
}

// MultiPage returns the layout that spreads items over sheets of 14
func MultiPage() LayoutSpec {
	return LayoutSpec{
		Variant:       VariantMultiPage,
		RowsPerPage:   14,
		ChunkSize:     14,
		Footer:        FooterBlank,
		FooterColumns: 3,
		RowHeight:     12,
		Geometry:      DefaultGeometry(),
	}
}

// RepeatsPageChrome reports whether the note header and signature block are
// drawn on every physical sheet of a page, not only on its first and last.
func (s LayoutSpec) RepeatsPageChrome() bool {
	return s.ChunkSize > 0
}

// SpecFor returns the layout spec of a variant
func SpecFor(v Variant) (LayoutSpec, error) {
	switch v {
	case VariantSinglePage:
		return SinglePage(), nil
	case VariantMultiPage:
		return MultiPage(), nil
	}
	return LayoutSpec{}, shared.NewDomainError("INVALID_VARIANT", "Unknown layout variant: "+v.String())
}

// Validate checks that the spec describes a drawable layout
func (s LayoutSpec) Validate() error {
	switch {
	case s.RowsPerPage < 0:
		return invalidSpec("rowsPerPage cannot be negative")
	case s.ChunkSize < 0:
		return invalidSpec("chunkSize cannot be negative")
	case !s.Footer.IsValid():
		return invalidSpec(fmt.Sprintf("unknown footer kind %q", s.Footer))
	case s.FooterColumns < 1 || s.FooterColumns > TableColumns:
		return invalidSpec(fmt.Sprintf("footerColumns must be between 1 and %d", TableColumns))
	case s.Footer == FooterNote && s.FooterColumns < 2:
		return invalidSpec("note footer needs at least 2 columns")
	case s.RowHeight <= 0:
		return invalidSpec("rowHeight must be positive")
	case !s.Geometry.Paper.IsValid():
		return invalidSpec(fmt.Sprintf("unknown paper size %q", s.Geometry.Paper))
	case s.Geometry.FontSize <= 0:
		return invalidSpec("fontSize must be positive")
	case s.Geometry.ContentWidth() <= 0 || s.Geometry.ContentHeight() <= 0:
		return invalidSpec("margins leave no room for content")
	}
	return nil
}

func invalidSpec(msg string) error {
	return shared.NewDomainError("INVALID_LAYOUT", "Invalid layout: "+msg)
}
