package printing

import (
	"github.com/shopspring/decimal"

	"github.com/erp/suratjalan/internal/domain/shipping"
)

// =============================================================================
// Request DTOs
// =============================================================================

// DocumentRequest is the JSON form of a delivery note
type DocumentRequest struct {
	Number   string `json:"number" binding:"required,max=100"`
	PONumber string `json:"poNumber" binding:"required,max=100"`
	DONumber string `json:"doNumber" binding:"required,max=100"`

	Recipient        string `json:"recipient" binding:"required,max=200"`
	RecipientAddress string `json:"recipientAddress" binding:"required,max=1000"`
	DistributorName  string `json:"distributorName" binding:"required,max=200"`

	SubmissionDate shipping.Date `json:"submissionDate"`
	DeliveryDate   shipping.Date `json:"deliveryDate"`

	Vehicle        string `json:"vehicle" binding:"required,max=50"`
	ExpeditionName string `json:"expeditionName" binding:"required,max=200"`
	Trips          int    `json:"trips" binding:"gte=0"`

	WarehouseHead    string `json:"warehouseHead" binding:"max=100"`
	WarehouseStaff   string `json:"warehouseStaff" binding:"max=100"`
	OrderDescription string `json:"orderDescription" binding:"max=500"`

	Items []LineItemRequest `json:"items" binding:"dive"`
}

// LineItemRequest is one goods row of a DocumentRequest
type LineItemRequest struct {
	No          int             `json:"no" binding:"required,gt=0"`
	Description string          `json:"description" binding:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit" binding:"required,max=20"`
	Remark      string          `json:"remark" binding:"max=100"`
}

// ToParams converts the request into document constructor parameters
func (r *DocumentRequest) ToParams() shipping.DocumentParams {
	items := make([]shipping.LineItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = shipping.LineItem{
			No:          item.No,
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			Remark:      item.Remark,
		}
	}
	return shipping.DocumentParams{
		Number:           r.Number,
		PONumber:         r.PONumber,
		DONumber:         r.DONumber,
		Recipient:        r.Recipient,
		RecipientAddress: r.RecipientAddress,
		DistributorName:  r.DistributorName,
		SubmissionDate:   r.SubmissionDate,
		DeliveryDate:     r.DeliveryDate,
		Vehicle:          r.Vehicle,
		ExpeditionName:   r.ExpeditionName,
		Trips:            r.Trips,
		WarehouseHead:    r.WarehouseHead,
		WarehouseStaff:   r.WarehouseStaff,
		OrderDescription: r.OrderDescription,
		Items:            items,
	}
}

// ToDocumentRequest converts a document back into its JSON form
func ToDocumentRequest(doc *shipping.Document) DocumentRequest {
	items := doc.Items()
	reqItems := make([]LineItemRequest, len(items))
	for i, item := range items {
		reqItems[i] = LineItemRequest{
			No:          item.No,
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			Remark:      item.Remark,
		}
	}
	return DocumentRequest{
		Number:           doc.Number(),
		PONumber:         doc.PONumber(),
		DONumber:         doc.DONumber(),
		Recipient:        doc.Recipient(),
		RecipientAddress: doc.RecipientAddress(),
		DistributorName:  doc.DistributorName(),
		SubmissionDate:   doc.SubmissionDate(),
		DeliveryDate:     doc.DeliveryDate(),
		Vehicle:          doc.Vehicle(),
		ExpeditionName:   doc.ExpeditionName(),
		Trips:            doc.Trips(),
		WarehouseHead:    doc.WarehouseHead(),
		WarehouseStaff:   doc.WarehouseStaff(),
		OrderDescription: doc.OrderDescription(),
		Items:            reqItems,
	}
}

// =============================================================================
// Response DTOs
// =============================================================================

// Base64Response carries a rendered PDF as a base64 string
type Base64Response struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Base64      string `json:"base64"`
}

// PreviewResponse carries the HTML preview of a delivery note
type PreviewResponse struct {
	HTML      string `json:"html"`
	PageCount int    `json:"pageCount"`
	Variant   string `json:"variant"`
}

// PDFResult is a rendered delivery note
type PDFResult struct {
	FileName    string
	ContentType string
	Data        []byte
	PageCount   int
	Variant     string
	Engine      string
}
