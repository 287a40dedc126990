// Package printing contains the Printing bounded context.
// It turns a delivery note into a sequence of page descriptors: header grid,
// intro lines, a fixed-height item table and a signature block. Descriptors
// carry text, alignment and borders only; drawing them is left to the
// renderers in the infrastructure layer.
package printing
