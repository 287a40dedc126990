package printing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/suratjalan/internal/domain/printing"
	"github.com/erp/suratjalan/internal/domain/shipping"
)

// Sample item counts per variant
const (
	SampleSinglePageItems = 4
	SampleMultiPageItems  = 18
)

const (
	sampleWallTap05 = "Keran Tembok AWET PVC JC 05 (Pieces)"
	sampleWallTap06 = "Keran Tembok AWET PVC JC 06 (Pieces)"
	sampleTapCover  = "Kondom Keran AWET KK01 1/2 Inchi (Toples 40 Pieces)"
)

// SampleRequest returns the demonstration delivery note rendered when a
// request carries no document.
func SampleRequest(variant printing.Variant) DocumentRequest {
	submitted := shipping.NewDate(2026, time.January, 2)
	req := DocumentRequest{
		Number:           "260000005/KR/SJ/I/2026",
		PONumber:         "25129103814",
		DONumber:         "25129103814/XII/2025",
		Recipient:        "KURNIA",
		RecipientAddress: "KURNIA Jl. Cembul Rancamanyar KP. Cembul Pojol Rt/Rw. 02/16 Kel. Rancamanyar Kec. Baleendah-Bandung (terusan cibaduyut arah)",
		DistributorName:  "TBB",
		SubmissionDate:   submitted,
		DeliveryDate:     submitted,
		Vehicle:          "B 9591 B",
		ExpeditionName:   "BPAS - KRWG",
		Trips:            1,
		WarehouseHead:    "WAHYUDI",
		WarehouseStaff:   "M. NUR HABIB",
		OrderDescription: "ORD/202512/6067 - Online DOUBLE 23",
	}

	if variant == printing.VariantMultiPage {
		req.Items = []LineItemRequest{
			sampleItem(1, sampleWallTap05, 24),
			sampleItem(2, sampleWallTap06, 24),
		}
		for no := 3; no <= SampleMultiPageItems; no++ {
			req.Items = append(req.Items, sampleItem(no, sampleWallTap05, 1))
		}
		return req
	}

	req.Items = []LineItemRequest{
		sampleItem(1, sampleWallTap05, 24),
		sampleItem(2, sampleWallTap06, 24),
		sampleItem(3, sampleTapCover, 1),
		sampleItem(4, sampleWallTap05, 1),
	}
	return req
}

func sampleItem(no int, description string, qty int64) LineItemRequest {
	return LineItemRequest{
		No:          no,
		Description: description,
		Quantity:    decimal.NewFromInt(qty),
		Unit:        "PCS",
		Remark:      "P3",
	}
}
