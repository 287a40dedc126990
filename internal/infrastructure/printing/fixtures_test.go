package printing

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/erp/suratjalan/internal/domain/printing"
	"github.com/erp/suratjalan/internal/domain/shipping"
)

func numberedItems(n int) []shipping.LineItem {
	items := make([]shipping.LineItem, n)
	for i := range items {
		items[i] = shipping.LineItem{
			No:          i + 1,
			Description: fmt.Sprintf("ITEM-%03d Keran Tembok AWET PVC", i+1),
			Quantity:    decimal.NewFromInt(int64(i + 1)),
			Unit:        "PCS",
			Remark:      "P3",
		}
	}
	return items
}

// wrappingItems returns n items whose descriptions take two lines in the
// description column
func wrappingItems(n int) []shipping.LineItem {
	items := numberedItems(n)
	for i := range items {
		items[i].Description = fmt.Sprintf("ITEM-%03d Keran Tembok AWET PVC ukuran setengah inci warna putih susu dengan sambungan drat luar dan seal karet", i+1)
	}
	return items
}

func testDocument(t *testing.T, items []shipping.LineItem) *shipping.Document {
	t.Helper()
	doc, err := shipping.NewDocument(shipping.DocumentParams{
		Number:           "260000005/KR/SJ/I/2026",
		PONumber:         "25129103814",
		DONumber:         "25129103814/XII/2025",
		Recipient:        "KURNIA",
		RecipientAddress: "KURNIA Jl. Cembul Rancamanyar KP. Cembul Pojol Rt/Rw. 02/16 Kel. Rancamanyar Kec. Baleendah-Bandung (terusan cibaduyut arah)",
		DistributorName:  "TBB",
		SubmissionDate:   shipping.NewDate(2026, time.January, 2),
		DeliveryDate:     shipping.NewDate(2026, time.January, 2),
		Vehicle:          "B 9591 B",
		ExpeditionName:   "BPAS - KRWG",
		Trips:            1,
		WarehouseHead:    "WAHYUDI",
		WarehouseStaff:   "M. NUR HABIB",
		OrderDescription: "ORD/202512/6067 - Online DOUBLE 23",
		Items:            items,
	})
	require.NoError(t, err)
	return doc
}

func testLayout(t *testing.T, n int, variant printing.Variant) *printing.Layout {
	t.Helper()
	spec, err := printing.SpecFor(variant)
	require.NoError(t, err)
	layout, err := printing.BuildLayout(testDocument(t, numberedItems(n)), spec)
	require.NoError(t, err)
	return layout
}

// shownText returns the content stream operator fpdf writes for s
func shownText(s string) []byte {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "(", `\(`)
	s = strings.ReplaceAll(s, ")", `\)`)
	return []byte("(" + s + ")Tj")
}
