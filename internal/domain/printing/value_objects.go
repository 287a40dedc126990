package printing

import "github.com/erp/suratjalan/internal/domain/shared"

const (
	// PointsPerCm converts centimeters to PDF points (72 / 2.54)
	PointsPerCm = 72 / 2.54
	// PointsPerMm converts millimeters to PDF points
	PointsPerMm = PointsPerCm / 10
)

// MillimetersToPoints converts a length in millimeters to PDF points
func MillimetersToPoints(mm float64) float64 {
	return mm * PointsPerMm
}

// Margins represents the page margins in points
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// NewMargins creates a new Margins value object
func NewMargins(top, right, bottom, left float64) (Margins, error) {
	if top < 0 || right < 0 || bottom < 0 || left < 0 {
		return Margins{}, shared.NewDomainError("INVALID_MARGINS", "Margins cannot be negative")
	}
	if top > 144 || right > 144 || bottom > 144 || left > 144 {
		return Margins{}, shared.NewDomainError("INVALID_MARGINS", "Margins cannot exceed 144pt")
	}
	return Margins{
		Top:    top,
		Right:  right,
		Bottom: bottom,
		Left:   left,
	}, nil
}

// UniformMargins returns equal margins on every side
func UniformMargins(pt float64) Margins {
	return Margins{Top: pt, Right: pt, Bottom: pt, Left: pt}
}

// IsZero returns true if all margins are zero
func (m Margins) IsZero() bool {
	return m.Top == 0 && m.Right == 0 && m.Bottom == 0 && m.Left == 0
}

// Equals checks if two Margins are equal
func (m Margins) Equals(other Margins) bool {
	return m.Top == other.Top &&
		m.Right == other.Right &&
		m.Bottom == other.Bottom &&
		m.Left == other.Left
}

// PageGeometry is the physical page a layout is drawn on
type PageGeometry struct {
	Paper    PaperSize `json:"paper"`
	Margins  Margins   `json:"margins"`
	FontSize float64   `json:"fontSize"` // base font size in points
}

// Width returns the page width in points
func (g PageGeometry) Width() float64 {
	w, _ := g.Paper.Points()
	return w
}

// Height returns the page height in points
func (g PageGeometry) Height() float64 {
	_, h := g.Paper.Points()
	return h
}

// ContentWidth returns the width between the left and right margins
func (g PageGeometry) ContentWidth() float64 {
	return g.Width() - g.Margins.Left - g.Margins.Right
}

// ContentHeight returns the height between the top and bottom margins
func (g PageGeometry) ContentHeight() float64 {
	return g.Height() - g.Margins.Top - g.Margins.Bottom
}
