package shipping

import "github.com/erp/suratjalan/internal/domain/shared"

// CodeInvalidDocument is the domain error code for a document missing
// required data or carrying out-of-range values.
const CodeInvalidDocument = "INVALID_DOCUMENT"

// Violation is a single invalid field of a document
type Violation = shared.FieldViolation

// ErrInvalidDocument matches any invalid document error via errors.Is
var ErrInvalidDocument = shared.NewDomainError(CodeInvalidDocument, "Invalid delivery note")

func newInvalidDocumentError(violations []Violation) *shared.DomainError {
	return shared.NewValidationError(CodeInvalidDocument, "Invalid delivery note", violations)
}
