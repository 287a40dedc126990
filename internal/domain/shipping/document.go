package shipping

import (
	"fmt"
	"strings"
)

// DocumentParams carries the raw values used to build a Document
type DocumentParams struct {
	Number   string
	PONumber string
	DONumber string

	Recipient        string
	RecipientAddress string
	DistributorName  string

	SubmissionDate Date
	DeliveryDate   Date

	Vehicle        string
	ExpeditionName string
	Trips          int

	WarehouseHead  string
	WarehouseStaff string

	OrderDescription string

	Items []LineItem
}

// Document is an immutable delivery note.
// Items keep the order supplied by the caller.
type Document struct {
	number   string
	poNumber string
	doNumber string

	recipient        string
	recipientAddress string
	distributorName  string

	submissionDate Date
	deliveryDate   Date

	vehicle        string
	expeditionName string
	trips          int

	warehouseHead  string
	warehouseStaff string

	orderDescription string

	items []LineItem
}

// NewDocument validates params and builds a Document.
// All fields are required except WarehouseHead, WarehouseStaff and OrderDescription.
func NewDocument(p DocumentParams) (*Document, error) {
	if v := p.violations(); len(v) > 0 {
		return nil, newInvalidDocumentError(v)
	}

	items := make([]LineItem, len(p.Items))
	copy(items, p.Items)

	return &Document{
		number:           p.Number,
		poNumber:         p.PONumber,
		doNumber:         p.DONumber,
		recipient:        p.Recipient,
		recipientAddress: p.RecipientAddress,
		distributorName:  p.DistributorName,
		submissionDate:   p.SubmissionDate,
		deliveryDate:     p.DeliveryDate,
		vehicle:          p.Vehicle,
		expeditionName:   p.ExpeditionName,
		trips:            p.Trips,
		warehouseHead:    strings.TrimSpace(p.WarehouseHead),
		warehouseStaff:   strings.TrimSpace(p.WarehouseStaff),
		orderDescription: p.OrderDescription,
		items:            items,
	}, nil
}

// MustNewDocument builds a Document and panics on error
func MustNewDocument(p DocumentParams) *Document {
	doc, err := NewDocument(p)
	if err != nil {
		panic(err)
	}
	return doc
}

func (p DocumentParams) violations() []Violation {
	var v []Violation
	required := []struct {
		field string
		value string
	}{
		{"number", p.Number},
		{"poNumber", p.PONumber},
		{"doNumber", p.DONumber},
		{"recipient", p.Recipient},
		{"recipientAddress", p.RecipientAddress},
		{"distributorName", p.DistributorName},
		{"vehicle", p.Vehicle},
		{"expeditionName", p.ExpeditionName},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			v = append(v, Violation{Field: r.field, Message: "is required"})
		}
	}
	if p.SubmissionDate.IsZero() {
		v = append(v, Violation{Field: "submissionDate", Message: "is required"})
	}
	if p.DeliveryDate.IsZero() {
		v = append(v, Violation{Field: "deliveryDate", Message: "is required"})
	}
	if p.Trips < 0 {
		v = append(v, Violation{Field: "trips", Message: "cannot be negative"})
	}
	for i, item := range p.Items {
		v = append(v, item.violations(fmt.Sprintf("items[%d]", i))...)
	}
	return v
}

// Number returns the delivery note number
func (d *Document) Number() string { return d.number }

// PONumber returns the purchase order number ("OP")
func (d *Document) PONumber() string { return d.poNumber }

// DONumber returns the delivery order number
func (d *Document) DONumber() string { return d.doNumber }

// Recipient returns the recipient name
func (d *Document) Recipient() string { return d.recipient }

// RecipientAddress returns the recipient address
func (d *Document) RecipientAddress() string { return d.recipientAddress }

// DistributorName returns the distributor name
func (d *Document) DistributorName() string { return d.distributorName }

// SubmissionDate returns the date the note was issued
func (d *Document) SubmissionDate() Date { return d.submissionDate }

// DeliveryDate returns the date the goods are shipped
func (d *Document) DeliveryDate() Date { return d.deliveryDate }

// Vehicle returns the vehicle (armada) identifier
func (d *Document) Vehicle() string { return d.vehicle }

// ExpeditionName returns the courier company name
func (d *Document) ExpeditionName() string { return d.expeditionName }

// Trips returns the trip count (ritase)
func (d *Document) Trips() int { return d.trips }

// WarehouseHead returns the warehouse head name, empty if unknown
func (d *Document) WarehouseHead() string { return d.warehouseHead }

// WarehouseStaff returns the warehouse staff name, empty if unknown
func (d *Document) WarehouseStaff() string { return d.warehouseStaff }

// OrderDescription returns the merchant order line, empty if unknown
func (d *Document) OrderDescription() string { return d.orderDescription }

// ItemCount returns the number of line items
func (d *Document) ItemCount() int { return len(d.items) }

// Items returns a copy of the line items in caller order
func (d *Document) Items() []LineItem {
	items := make([]LineItem, len(d.items))
	copy(items, d.items)
	return items
}

// Params returns the values the document was built from.
// Useful to derive a modified copy through NewDocument.
func (d *Document) Params() DocumentParams {
	return DocumentParams{
		Number:           d.number,
		PONumber:         d.poNumber,
		DONumber:         d.doNumber,
		Recipient:        d.recipient,
		RecipientAddress: d.recipientAddress,
		DistributorName:  d.distributorName,
		SubmissionDate:   d.submissionDate,
		DeliveryDate:     d.deliveryDate,
		Vehicle:          d.vehicle,
		ExpeditionName:   d.expeditionName,
		Trips:            d.trips,
		WarehouseHead:    d.warehouseHead,
		WarehouseStaff:   d.warehouseStaff,
		OrderDescription: d.orderDescription,
		Items:            d.Items(),
	}
}
