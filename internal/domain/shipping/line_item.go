package shipping

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one row of goods on a delivery note.
// No is assigned by the caller and printed as-is; it is never renumbered.
type LineItem struct {
	No          int             `json:"no"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	Remark      string          `json:"remark"`
}

// NewLineItem creates a validated line item
func NewLineItem(no int, description string, quantity decimal.Decimal, unit, remark string) (LineItem, error) {
	item := LineItem{
		No:          no,
		Description: description,
		Quantity:    quantity,
		Unit:        unit,
		Remark:      remark,
	}
	if v := item.violations("item"); len(v) > 0 {
		return LineItem{}, newInvalidDocumentError(v)
	}
	return item, nil
}

// QuantityText returns the quantity without trailing zeros, e.g. "24" or "1.5"
func (i LineItem) QuantityText() string {
	return i.Quantity.String()
}

func (i LineItem) violations(prefix string) []Violation {
	var v []Violation
	if i.No <= 0 {
		v = append(v, Violation{Field: prefix + ".no", Message: "must be a positive integer"})
	}
	if strings.TrimSpace(i.Description) == "" {
		v = append(v, Violation{Field: prefix + ".description", Message: "is required"})
	}
	if i.Quantity.IsNegative() {
		v = append(v, Violation{Field: prefix + ".quantity", Message: "cannot be negative"})
	}
	if strings.TrimSpace(i.Unit) == "" {
		v = append(v, Violation{Field: prefix + ".unit", Message: "is required"})
	}
	return v
}
