package onec

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument(documentType domain.DocumentType) *domain.Document {
	return &domain.Document{
		ID:        10,
		Type:      documentType,
		Number:    "INV-2024-12-0001",
		OrderID:   7,
		SellerID:  1,
		BuyerID:   2,
		IssuedAt:  time.Date(2024, 12, 15, 10, 30, 0, 0, time.UTC),
		Subtotal:  decimal.MustParse("300.00"),
		VATRate:   decimal.MustParse("12"),
		VATAmount: decimal.MustParse("36.00"),
		Total:     decimal.MustParse("336.00"),
		Status:    domain.DocumentStatusConfirmed,
		Items: []domain.DocumentItem{
			{Title: "Paper A4", Quantity: 2,
				UnitPrice: decimal.MustParse("150.00"), Total: decimal.MustParse("300.00")},
		},
		Seller: &domain.Company{ID: 1, Name: "Dibek Trade LLP", BIN: "100340000179"},
		Buyer:  &domain.Company{ID: 2, Name: "Qazaq Retail LLP", BIN: "940140000385"},
	}
}

func TestBuildEnvelope(t *testing.T) {
	now := time.Date(2024, 12, 15, 12, 0, 0, 0, time.UTC)

	env, err := buildEnvelope(sampleDocument(domain.DocumentTypeInvoice), now)
	require.NoError(t, err)

	assert.Equal(t, "invoice", env.DocumentType)
	assert.Equal(t, "Счет", env.OneCType)
	assert.Equal(t, "INV-2024-12-0001", env.DocumentNumber)
	assert.Equal(t, "2024-12-15T10:30:00Z", env.DocumentDate)
	assert.Equal(t, "2024-12-15T12:00:00Z", env.ExportTimestamp)
	assert.Equal(t, "Dibek Trade LLP", env.CompanySeller.Name)
	assert.Equal(t, "100340000179", env.CompanySeller.BIN)
	assert.Equal(t, "940140000385", env.CompanyBuyer.BIN)
	assert.Equal(t, 300.0, env.Subtotal)
	assert.Equal(t, 12.0, env.VATRate)
	assert.Equal(t, 36.0, env.VATAmount)
	assert.Equal(t, 336.0, env.TotalAmount)

	require.Len(t, env.Items, 1)
	assert.Equal(t, "Paper A4", env.Items[0].Title)
	assert.Equal(t, uint32(2), env.Items[0].Quantity)
	assert.Equal(t, 150.0, env.Items[0].UnitPrice)
	assert.Equal(t, 300.0, env.Items[0].TotalPrice)
}

func TestBuildEnvelopeOneCTypes(t *testing.T) {
	now := time.Now()

	expected := map[domain.DocumentType]string{
		domain.DocumentTypeInvoice:    "Счет",
		domain.DocumentTypeAct:        "АктВыполненныхРабот",
		domain.DocumentTypeWaybill:    "ТоварнаяНакладная",
		domain.DocumentTypeTaxInvoice: "СчетФактура",
		domain.DocumentTypeTaxReport:  "",
	}

	for documentType, onecType := range expected {
		env, err := buildEnvelope(sampleDocument(documentType), now)
		require.NoError(t, err)
		assert.Equal(t, onecType, env.OneCType, string(documentType))
	}
}

func TestBuildEnvelopeNeedsCompanies(t *testing.T) {
	document := sampleDocument(domain.DocumentTypeInvoice)
	document.Seller = nil

	_, err := buildEnvelope(document, time.Now())
	assert.Error(t, err)
}

func TestEnvelopeJSON(t *testing.T) {
	now := time.Date(2024, 12, 15, 12, 0, 0, 0, time.UTC)

	env, err := buildEnvelope(sampleDocument(domain.DocumentTypeInvoice), now)
	require.NoError(t, err)

	data, err := env.encode(domain.FileFormatJSON)
	require.NoError(t, err)

	decoded := map[string]any{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "invoice", decoded["document_type"])
	assert.Equal(t, "Счет", decoded["onec_type"])
	assert.Equal(t, "INV-2024-12-0001", decoded["document_number"])
	assert.Equal(t, 336.0, decoded["total_amount"])

	seller, ok := decoded["company_seller"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "100340000179", seller["bin"])

	items, ok := decoded["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestEnvelopeJSONOmitsMissingOneCType(t *testing.T) {
	env, err := buildEnvelope(sampleDocument(domain.DocumentTypeTaxReport), time.Now())
	require.NoError(t, err)

	data, err := env.encode(domain.FileFormatJSON)
	require.NoError(t, err)

	decoded := map[string]any{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	_, present := decoded["onec_type"]
	assert.False(t, present)
}

func TestEnvelopeXML(t *testing.T) {
	env, err := buildEnvelope(sampleDocument(domain.DocumentTypeWaybill), time.Now())
	require.NoError(t, err)

	data, err := env.encode(domain.FileFormatXML)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "<?xml"))
	assert.Contains(t, text, "<document>")
	assert.Contains(t, text, "<document_number>INV-2024-12-0001</document_number>")
	assert.Contains(t, text, "<onec_type>ТоварнаяНакладная</onec_type>")
	assert.Contains(t, text, "<items>")
	assert.Contains(t, text, "<item>")
}

func TestEnvelopeCSV(t *testing.T) {
	now := time.Date(2024, 12, 15, 12, 0, 0, 0, time.UTC)

	document := sampleDocument(domain.DocumentTypeInvoice)
	document.Items = append(document.Items, domain.DocumentItem{
		Title: "Stapler", Quantity: 1,
		UnitPrice: decimal.MustParse("45.50"), Total: decimal.MustParse("45.50"),
	})

	env, err := buildEnvelope(document, now)
	require.NoError(t, err)

	data, err := env.encode(domain.FileFormatCSV)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "document_type", rows[0][0])
	assert.Equal(t, "item_title", rows[0][7])

	assert.Equal(t, "invoice", rows[1][0])
	assert.Equal(t, "INV-2024-12-0001", rows[1][1])
	assert.Equal(t, "Paper A4", rows[1][7])
	assert.Equal(t, "2", rows[1][8])
	assert.Equal(t, "150.00", rows[1][9])
	assert.Equal(t, "12.00", rows[1][12])

	assert.Equal(t, "Stapler", rows[2][7])
	assert.Equal(t, "45.50", rows[2][9])
	// Document fields repeat on every row.
	assert.Equal(t, rows[1][14], rows[2][14])
}

func TestEnvelopeUnknownFormat(t *testing.T) {
	env, err := buildEnvelope(sampleDocument(domain.DocumentTypeInvoice), time.Now())
	require.NoError(t, err)

	_, err = env.encode("yaml")
	assert.Equal(t, domain.ErrIntegrationBadFormat, err)
}

func TestEnvelopeFileName(t *testing.T) {
	env, err := buildEnvelope(sampleDocument(domain.DocumentTypeInvoice), time.Now())
	require.NoError(t, err)

	assert.Equal(t, "INV-2024-12-0001_invoice.json", env.fileName(domain.FileFormatJSON))
	assert.Equal(t, "INV-2024-12-0001_invoice.xml", env.fileName(domain.FileFormatXML))
}
