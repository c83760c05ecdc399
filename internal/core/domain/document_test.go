package domain_test

import (
	"testing"
	"time"

	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatDocumentNumber(t *testing.T) {
	type numberTest struct {
		name      string
		docType   domain.DocumentType
		year      int
		month     time.Month
		seq       uint64
		expNumber string
		expError  error
	}

	tests := []numberTest{
		{
			name:      "invoice first of month",
			docType:   domain.DocumentTypeInvoice,
			year:      2024,
			month:     time.December,
			seq:       1,
			expNumber: "INV-2024-12-0001",
		},
		{
			name:      "tax invoice mid sequence",
			docType:   domain.DocumentTypeTaxInvoice,
			year:      2025,
			month:     time.January,
			seq:       42,
			expNumber: "TAX-2025-01-0042",
		},
		{
			name:      "tax report keeps its own prefix",
			docType:   domain.DocumentTypeTaxReport,
			year:      2025,
			month:     time.January,
			seq:       7,
			expNumber: "REP-2025-01-0007",
		},
		{
			name:      "waybill zero pads month",
			docType:   domain.DocumentTypeWaybill,
			year:      2024,
			month:     time.March,
			seq:       205,
			expNumber: "WAY-2024-03-0205",
		},
		{
			name:      "act sequence above padding width",
			docType:   domain.DocumentTypeAct,
			year:      2024,
			month:     time.June,
			seq:       12345,
			expNumber: "ACT-2024-06-12345",
		},
		{
			name:     "unknown type",
			docType:  domain.DocumentType("receipt"),
			year:     2024,
			month:    time.December,
			seq:      1,
			expError: domain.ErrDocumentBadType,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			number, err := domain.FormatDocumentNumber(test.docType, test.year, test.month, test.seq)
			assert.Equal(t, test.expError, err)
			assert.Equal(t, test.expNumber, number)
		})
	}
}

func TestDocumentTypeValid(t *testing.T) {
	for _, dt := range []domain.DocumentType{
		domain.DocumentTypeInvoice,
		domain.DocumentTypeAct,
		domain.DocumentTypeWaybill,
		domain.DocumentTypeTaxInvoice,
		domain.DocumentTypeTaxReport,
	} {
		assert.True(t, dt.Valid(), string(dt))
	}

	assert.False(t, domain.DocumentType("").Valid())
	assert.False(t, domain.DocumentType("INVOICE").Valid())
	assert.False(t, domain.DocumentType("contract").Valid())
}

func TestDocumentStatusTransitions(t *testing.T) {
	type transitionTest struct {
		from    domain.DocumentStatus
		to      domain.DocumentStatus
		allowed bool
	}

	tests := []transitionTest{
		{domain.DocumentStatusDraft, domain.DocumentStatusSent, true},
		{domain.DocumentStatusDraft, domain.DocumentStatusCancelled, true},
		{domain.DocumentStatusDraft, domain.DocumentStatusConfirmed, false},
		{domain.DocumentStatusDraft, domain.DocumentStatusPaid, false},
		{domain.DocumentStatusSent, domain.DocumentStatusConfirmed, true},
		{domain.DocumentStatusSent, domain.DocumentStatusCancelled, true},
		{domain.DocumentStatusSent, domain.DocumentStatusDraft, false},
		{domain.DocumentStatusConfirmed, domain.DocumentStatusPaid, true},
		{domain.DocumentStatusConfirmed, domain.DocumentStatusCancelled, true},
		{domain.DocumentStatusConfirmed, domain.DocumentStatusSent, false},
		{domain.DocumentStatusPaid, domain.DocumentStatusCancelled, false},
		{domain.DocumentStatusPaid, domain.DocumentStatusDraft, false},
		{domain.DocumentStatusCancelled, domain.DocumentStatusDraft, false},
		{domain.DocumentStatusCancelled, domain.DocumentStatusSent, false},
	}

	for _, test := range tests {
		t.Run(string(test.from)+"->"+string(test.to), func(t *testing.T) {
			assert.Equal(t, test.allowed, test.from.CanTransition(test.to))
		})
	}
}
