package printing

import (
	"strings"

	"github.com/erp/suratjalan/internal/domain/shared"
)

// Variant selects how a delivery note is paginated
type Variant string

const (
	VariantSinglePage Variant = "single-page" // all items on one sheet, 11-row table
	VariantMultiPage  Variant = "multi-page"  // 14 items per sheet, 14-row table
)

// ParseVariant converts a user supplied variant name.
// Underscores and case are tolerated, so "SINGLE_PAGE" is accepted.
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	if !v.IsValid() {
		return "", shared.NewDomainError("INVALID_VARIANT", "Unknown layout variant: "+s)
	}
	return v, nil
}

// IsValid checks if the Variant is a valid value
func (v Variant) IsValid() bool {
	switch v {
	case VariantSinglePage, VariantMultiPage:
		return true
	}
	return false
}

// String returns the string representation of Variant
func (v Variant) String() string {
	return string(v)
}

// AllVariants returns all valid Variant values
func AllVariants() []Variant {
	return []Variant{VariantSinglePage, VariantMultiPage}
}

// FooterKind describes the trailing row of the item table
type FooterKind string

const (
	FooterNote  FooterKind = "NOTE"  // merchant order and expedition note
	FooterBlank FooterKind = "BLANK" // empty bordered cells closing the table
)

// IsValid checks if the FooterKind is a valid value
func (f FooterKind) IsValid() bool {
	return f == FooterNote || f == FooterBlank
}

// PaperSize represents the paper size for printing
type PaperSize string

const (
	PaperSizeSuratJalan PaperSize = "SURAT_JALAN" // 210mm x 140mm, half-height continuous form
	PaperSizeA5         PaperSize = "A5"          // 148mm x 210mm
	PaperSizeA4         PaperSize = "A4"          // 210mm x 297mm
)

// IsValid checks if the PaperSize is a valid value
func (p PaperSize) IsValid() bool {
	switch p {
	case PaperSizeSuratJalan, PaperSizeA5, PaperSizeA4:
		return true
	}
	return false
}

// String returns the string representation of PaperSize
func (p PaperSize) String() string {
	return string(p)
}

// Dimensions returns the paper dimensions in millimeters (width, height)
func (p PaperSize) Dimensions() (width, height int) {
	switch p {
	case PaperSizeA5:
		return 148, 210
	case PaperSizeA4:
		return 210, 297
	default:
		return 210, 140
	}
}

// Points returns the paper dimensions in PDF points
func (p PaperSize) Points() (width, height float64) {
	w, h := p.Dimensions()
	return MillimetersToPoints(float64(w)), MillimetersToPoints(float64(h))
}

// Align is the horizontal alignment of text inside a cell
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Border is a bit set of the cell edges that are ruled
type Border uint8

const (
	BorderLeft Border = 1 << iota
	BorderTop
	BorderRight
	BorderBottom

	BorderNone  Border = 0
	BorderSides        = BorderLeft | BorderRight
	BorderAll          = BorderLeft | BorderTop | BorderRight | BorderBottom
)

// Has reports whether every edge in e is ruled
func (b Border) Has(e Border) bool {
	return b&e == e
}

// String returns the edges as a subset of "LTRB"
func (b Border) String() string {
	var sb strings.Builder
	if b.Has(BorderLeft) {
		sb.WriteByte('L')
	}
	if b.Has(BorderTop) {
		sb.WriteByte('T')
	}
	if b.Has(BorderRight) {
		sb.WriteByte('R')
	}
	if b.Has(BorderBottom) {
		sb.WriteByte('B')
	}
	return sb.String()
}

// RowKind distinguishes item rows from padding rows
type RowKind string

const (
	RowItem  RowKind = "ITEM"
	RowBlank RowKind = "BLANK"
)
