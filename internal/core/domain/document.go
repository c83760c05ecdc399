package domain

import (
	"fmt"
	"time"

	"github.com/govalues/decimal"
)

type DocumentType string

const (
	DocumentTypeInvoice    DocumentType = "invoice"
	DocumentTypeAct        DocumentType = "act"
	DocumentTypeWaybill    DocumentType = "waybill"
	DocumentTypeTaxInvoice DocumentType = "tax_invoice"
	DocumentTypeTaxReport  DocumentType = "tax_report"
)

// Number prefixes are fixed per type. Truncating the type name would give
// tax_invoice and tax_report the same prefix, so the table is explicit.
var documentNumberPrefix = map[DocumentType]string{
	DocumentTypeInvoice:    "INV",
	DocumentTypeAct:        "ACT",
	DocumentTypeWaybill:    "WAY",
	DocumentTypeTaxInvoice: "TAX",
	DocumentTypeTaxReport:  "REP",
}

func (t DocumentType) Valid() bool {
	_, ok := documentNumberPrefix[t]
	return ok
}

// FormatDocumentNumber renders a reserved sequence value as a document
// number, e.g. INV-2024-12-0001. The sequence must already be allocated for
// the (type, seller, year, month) scope.
func FormatDocumentNumber(t DocumentType, year int, month time.Month, seq uint64) (string, error) {
	prefix, ok := documentNumberPrefix[t]
	if !ok {
		return "", ErrDocumentBadType
	}
	return fmt.Sprintf("%s-%d-%02d-%04d", prefix, year, month, seq), nil
}

type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "draft"
	DocumentStatusSent      DocumentStatus = "sent"
	DocumentStatusConfirmed DocumentStatus = "confirmed"
	DocumentStatusPaid      DocumentStatus = "paid"
	DocumentStatusCancelled DocumentStatus = "cancelled"
)

var documentStatusFlow = map[DocumentStatus][]DocumentStatus{
	DocumentStatusDraft:     {DocumentStatusSent, DocumentStatusCancelled},
	DocumentStatusSent:      {DocumentStatusConfirmed, DocumentStatusCancelled},
	DocumentStatusConfirmed: {DocumentStatusPaid, DocumentStatusCancelled},
}

func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentStatusDraft, DocumentStatusSent, DocumentStatusConfirmed,
		DocumentStatusPaid, DocumentStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a document may move from s to next.
// Paid and cancelled are terminal.
func (s DocumentStatus) CanTransition(next DocumentStatus) bool {
	for _, allowed := range documentStatusFlow[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Document struct {
	ID        uint64
	Type      DocumentType
	Number    string
	OrderID   uint64
	SellerID  uint64
	BuyerID   uint64
	IssuedAt  time.Time
	DueAt     *time.Time
	Subtotal  decimal.Decimal
	VATRate   decimal.Decimal
	VATAmount decimal.Decimal
	Total     decimal.Decimal
	Status    DocumentStatus
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
	Items     []DocumentItem
	Seller    *Company
	Buyer     *Company
}

type DocumentItem struct {
	ID         uint64
	DocumentID uint64
	Title      string
	Quantity   uint32
	UnitPrice  decimal.Decimal
	Total      decimal.Decimal
}
