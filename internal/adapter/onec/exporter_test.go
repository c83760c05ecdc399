package onec

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dibekkz/dibek/internal/adapter/config"
	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testExporter(t *testing.T) *Exporter {
	t.Helper()

	exporter, err := NewExporter(&config.OneC{
		WebServiceTimeout: 5 * time.Second,
		RetryAttempts:     2,
		RetryDelay:        time.Millisecond,
	}, zap.NewNop())
	require.NoError(t, err)

	return exporter
}

func TestExporterFileExport(t *testing.T) {
	dir := t.TempDir()
	exporter := testExporter(t)

	integration := &domain.Integration{
		ID:         1,
		Type:       domain.IntegrationTypeFileExport,
		ExportPath: dir,
		FileFormat: domain.FileFormatJSON,
		Active:     true,
	}

	result, err := exporter.ExportDocument(context.Background(),
		sampleDocument(domain.DocumentTypeInvoice), integration)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "INV-2024-12-0001_invoice.json"), result.Target)

	data, err := os.ReadFile(result.Target)
	require.NoError(t, err)

	decoded := map[string]any{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "INV-2024-12-0001", decoded["document_number"])

	response := fileResult{}
	require.NoError(t, json.Unmarshal(result.Response, &response))
	assert.True(t, response.Success)
	assert.Equal(t, result.Target, response.FilePath)
}

func TestExporterWebService(t *testing.T) {
	var requests int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "exchange", user)
		assert.Equal(t, "secret", pass)

		sent := map[string]any{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		assert.Equal(t, "INV-2024-12-0001", sent["document_number"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"accepted","external_id":"1C-77"}`))
	}))
	defer server.Close()

	exporter := testExporter(t)

	integration := &domain.Integration{
		ID:          1,
		Type:        domain.IntegrationTypeWebService,
		EndpointURL: server.URL,
		Username:    "exchange",
		Password:    "secret",
		Active:      true,
	}

	result, err := exporter.ExportDocument(context.Background(),
		sampleDocument(domain.DocumentTypeInvoice), integration)
	require.NoError(t, err)

	assert.Equal(t, 1, requests)
	assert.Equal(t, "1C-77", result.ExternalID)
	assert.Equal(t, server.URL, result.Target)
	assert.JSONEq(t, `{"success":true,"message":"accepted","external_id":"1C-77"}`,
		string(result.Response))
}

func TestExporterWebServiceRetriesServerErrors(t *testing.T) {
	var requests int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	exporter := testExporter(t)

	integration := &domain.Integration{
		Type:        domain.IntegrationTypeWebService,
		EndpointURL: server.URL,
	}

	result, err := exporter.ExportDocument(context.Background(),
		sampleDocument(domain.DocumentTypeInvoice), integration)
	require.NoError(t, err)

	assert.Equal(t, 3, requests)
	assert.Equal(t, "1C_INV-2024-12-0001", result.ExternalID)
}

func TestExporterWebServiceStopsOnRejection(t *testing.T) {
	var requests int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	exporter := testExporter(t)

	integration := &domain.Integration{
		Type:        domain.IntegrationTypeWebService,
		EndpointURL: server.URL,
	}

	_, err := exporter.ExportDocument(context.Background(),
		sampleDocument(domain.DocumentTypeInvoice), integration)
	assert.Error(t, err)
	assert.Equal(t, 1, requests)
}

func TestExporterWebServiceHonorsRetryAfter(t *testing.T) {
	var requests int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	exporter := testExporter(t)

	integration := &domain.Integration{
		Type:        domain.IntegrationTypeWebService,
		EndpointURL: server.URL,
	}

	result, err := exporter.ExportDocument(context.Background(),
		sampleDocument(domain.DocumentTypeInvoice), integration)
	require.NoError(t, err)

	assert.Equal(t, 2, requests)
	assert.NotNil(t, result)
}

func TestExporterWebServiceWrapsNonJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}))
	defer server.Close()

	exporter := testExporter(t)

	integration := &domain.Integration{
		Type:        domain.IntegrationTypeWebService,
		EndpointURL: server.URL,
	}

	result, err := exporter.ExportDocument(context.Background(),
		sampleDocument(domain.DocumentTypeInvoice), integration)
	require.NoError(t, err)

	assert.JSONEq(t, `{"raw":"OK"}`, string(result.Response))
}

func TestExporterHybridFallsBackToFile(t *testing.T) {
	dir := t.TempDir()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	exporter := testExporter(t)

	integration := &domain.Integration{
		Type:        domain.IntegrationTypeHybrid,
		EndpointURL: server.URL,
		ExportPath:  dir,
		FileFormat:  domain.FileFormatXML,
		Active:      true,
	}

	result, err := exporter.ExportDocument(context.Background(),
		sampleDocument(domain.DocumentTypeInvoice), integration)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "INV-2024-12-0001_invoice.xml"), result.Target)

	_, err = os.Stat(result.Target)
	assert.NoError(t, err)
}

func TestExporterUnknownIntegrationType(t *testing.T) {
	exporter := testExporter(t)

	_, err := exporter.ExportDocument(context.Background(),
		sampleDocument(domain.DocumentTypeInvoice),
		&domain.Integration{Type: "carrier_pigeon"})
	assert.Equal(t, domain.ErrIntegrationBadType, err)
}

func TestExporterNeedsLoadedCompanies(t *testing.T) {
	exporter := testExporter(t)

	document := sampleDocument(domain.DocumentTypeInvoice)
	document.Buyer = nil

	_, err := exporter.ExportDocument(context.Background(), document,
		&domain.Integration{Type: domain.IntegrationTypeFileExport, ExportPath: t.TempDir()})
	assert.Error(t, err)
}
