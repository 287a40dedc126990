package printing

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/erp/suratjalan/internal/domain/shipping"
)

func testParams(items []shipping.LineItem) shipping.DocumentParams {
	return shipping.DocumentParams{
		Number:           "260000005/KR/SJ/I/2026",
		PONumber:         "25129103814",
		DONumber:         "25129103814/XII/2025",
		Recipient:        "KURNIA",
		RecipientAddress: "KURNIA Jl. Cembul Rancamanyar KP. Cembul Pojol Rt/Rw. 02/16",
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
	}
}

func testDocument(t *testing.T, items []shipping.LineItem) *shipping.Document {
	t.Helper()
	doc, err := shipping.NewDocument(testParams(items))
	require.NoError(t, err)
	return doc
}

// fakeItems returns n items with random, strictly increasing numbers
func fakeItems(f *gofakeit.Faker, n int) []shipping.LineItem {
	items := make([]shipping.LineItem, n)
	no := 0
	for i := range items {
		no += f.Number(1, 3)
		items[i] = shipping.LineItem{
			No:          no,
			Description: f.ProductName(),
			Quantity:    decimal.NewFromInt(int64(f.Number(0, 500))),
			Unit:        f.RandomString([]string{"PCS", "BOX", "SET", "ROLL"}),
			Remark:      f.RandomString([]string{"P1", "P2", "P3", "SISA", ""}),
		}
	}
	return items
}
