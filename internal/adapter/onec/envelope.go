package onec

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/govalues/decimal"
)

// onecDocumentTypes maps document types to their 1C object names.
// tax_report has no 1C counterpart and is exported without one.
var onecDocumentTypes = map[domain.DocumentType]string{
	domain.DocumentTypeInvoice:    "Счет",
	domain.DocumentTypeAct:        "АктВыполненныхРабот",
	domain.DocumentTypeWaybill:    "ТоварнаяНакладная",
	domain.DocumentTypeTaxInvoice: "СчетФактура",
}

type envelopeCompany struct {
	Name string `json:"name" xml:"name"`
	BIN  string `json:"bin" xml:"bin"`
}

type envelopeItem struct {
	Title      string  `json:"title" xml:"title"`
	Quantity   uint32  `json:"quantity" xml:"quantity"`
	UnitPrice  float64 `json:"unit_price" xml:"unit_price"`
	TotalPrice float64 `json:"total_price" xml:"total_price"`
}

// envelope is the wire form a document takes on its way to 1C,
// the same for files and the web service.
type envelope struct {
	XMLName         xml.Name        `json:"-" xml:"document"`
	DocumentType    string          `json:"document_type" xml:"document_type"`
	OneCType        string          `json:"onec_type,omitempty" xml:"onec_type,omitempty"`
	DocumentNumber  string          `json:"document_number" xml:"document_number"`
	DocumentDate    string          `json:"document_date" xml:"document_date"`
	CompanySeller   envelopeCompany `json:"company_seller" xml:"company_seller"`
	CompanyBuyer    envelopeCompany `json:"company_buyer" xml:"company_buyer"`
	Items           []envelopeItem  `json:"items" xml:"items>item"`
	Subtotal        float64         `json:"subtotal" xml:"subtotal"`
	VATRate         float64         `json:"vat_rate" xml:"vat_rate"`
	VATAmount       float64         `json:"vat_amount" xml:"vat_amount"`
	TotalAmount     float64         `json:"total_amount" xml:"total_amount"`
	ExportTimestamp string          `json:"export_timestamp" xml:"export_timestamp"`
}

func buildEnvelope(document *domain.Document, now time.Time) (*envelope, error) {
	if document.Seller == nil || document.Buyer == nil {
		return nil, fmt.Errorf("document %s has no companies loaded", document.Number)
	}

	items := make([]envelopeItem, 0, len(document.Items))
	for _, item := range document.Items {
		items = append(items, envelopeItem{
			Title:      item.Title,
			Quantity:   item.Quantity,
			UnitPrice:  asFloat(item.UnitPrice),
			TotalPrice: asFloat(item.Total),
		})
	}

	return &envelope{
		DocumentType:   string(document.Type),
		OneCType:       onecDocumentTypes[document.Type],
		DocumentNumber: document.Number,
		DocumentDate:   document.IssuedAt.Format(time.RFC3339),
		CompanySeller: envelopeCompany{
			Name: document.Seller.Name,
			BIN:  document.Seller.BIN,
		},
		CompanyBuyer: envelopeCompany{
			Name: document.Buyer.Name,
			BIN:  document.Buyer.BIN,
		},
		Items:           items,
		Subtotal:        asFloat(document.Subtotal),
		VATRate:         asFloat(document.VATRate),
		VATAmount:       asFloat(document.VATAmount),
		TotalAmount:     asFloat(document.Total),
		ExportTimestamp: now.Format(time.RFC3339),
	}, nil
}

// asFloat is safe for money amounts, they are far below the range
// where float64 loses integer cents.
func asFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func (e *envelope) fileName(format domain.FileFormat) string {
	return fmt.Sprintf("%s_%s.%s", e.DocumentNumber, e.DocumentType, format)
}

func (e *envelope) encode(format domain.FileFormat) ([]byte, error) {
	switch format {
	case domain.FileFormatJSON, "":
		return json.MarshalIndent(e, "", "  ")
	case domain.FileFormatXML:
		data, err := xml.MarshalIndent(e, "", "  ")
		if err != nil {
			return nil, err
		}
		return append([]byte(xml.Header), data...), nil
	case domain.FileFormatCSV:
		return e.encodeCSV()
	default:
		return nil, domain.ErrIntegrationBadFormat
	}
}

// encodeCSV flattens the document to one row per item, document
// fields repeated on every row.
func (e *envelope) encodeCSV() ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)

	header := []string{
		"document_type", "document_number", "document_date",
		"seller_name", "seller_bin", "buyer_name", "buyer_bin",
		"item_title", "item_quantity", "item_unit_price", "item_total_price",
		"subtotal", "vat_rate", "vat_amount", "total_amount", "export_timestamp",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, item := range e.Items {
		row := []string{
			e.DocumentType, e.DocumentNumber, e.DocumentDate,
			e.CompanySeller.Name, e.CompanySeller.BIN,
			e.CompanyBuyer.Name, e.CompanyBuyer.BIN,
			item.Title,
			strconv.FormatUint(uint64(item.Quantity), 10),
			formatAmount(item.UnitPrice),
			formatAmount(item.TotalPrice),
			formatAmount(e.Subtotal),
			formatAmount(e.VATRate),
			formatAmount(e.VATAmount),
			formatAmount(e.TotalAmount),
			e.ExportTimestamp,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
