package sharing

import (
	"fakturator/internal/core/apperror"
	"fakturator/internal/domain/documents/invoice"
)

// DocType is the public URL segment identifying a document family.
type DocType string

const (
	DocTypeInvoice     DocType = "faktura"
	DocTypeProforma    DocType = "predracun"
	DocTypeCalculation DocType = "obracun"
)

// ParseDocType validates a URL segment. Unknown segments resolve to NotFound
// so probing the URL space reveals nothing.
func ParseDocType(segment string) (DocType, error) {
	switch DocType(segment) {
	case DocTypeInvoice, DocTypeProforma, DocTypeCalculation:
		return DocType(segment), nil
	default:
		return "", apperror.NewNotFound("document", segment)
	}
}

// InvoiceKind maps a public doc type to the invoice kind it covers.
// Calculation has no invoice kind; ok is false.
func (t DocType) InvoiceKind() (invoice.Kind, bool) {
	switch t {
	case DocTypeInvoice:
		return invoice.KindInvoice, true
	case DocTypeProforma:
		return invoice.KindProforma, true
	default:
		return "", false
	}
}
