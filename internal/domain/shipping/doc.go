// Package shipping contains the Shipping bounded context.
// It models the delivery note (surat jalan) that accompanies goods leaving
// the warehouse: shipment metadata, the parties and signatories involved,
// and the ordered list of line items handed over to the recipient.
package shipping
