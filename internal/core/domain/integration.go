package domain

import "time"

type IntegrationType string

const (
	IntegrationTypeWebService IntegrationType = "webservice"
	IntegrationTypeFileExport IntegrationType = "file_export"
	IntegrationTypeHybrid     IntegrationType = "hybrid"
)

func (t IntegrationType) Valid() bool {
	switch t {
	case IntegrationTypeWebService, IntegrationTypeFileExport, IntegrationTypeHybrid:
		return true
	}
	return false
}

type FileFormat string

const (
	FileFormatJSON FileFormat = "json"
	FileFormatXML  FileFormat = "xml"
	FileFormatCSV  FileFormat = "csv"
)

func (f FileFormat) Valid() bool {
	switch f {
	case FileFormatJSON, FileFormatXML, FileFormatCSV:
		return true
	}
	return false
}

// Integration holds one configured 1C exchange. SyncInterval is in minutes.
type Integration struct {
	ID           uint64
	Name         string
	Type         IntegrationType
	EndpointURL  string
	Username     string
	Password     string
	ExportPath   string
	FileFormat   FileFormat
	AutoSync     bool
	SyncInterval uint32
	LastSyncAt   *time.Time
	Active       bool
	CreatedAt    time.Time
}
