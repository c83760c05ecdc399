package domain

import "time"

type SyncType string

const (
	SyncTypeExport SyncType = "export"
	SyncTypeImport SyncType = "import"
	SyncTypeUpdate SyncType = "update"
)

type SyncStatus string

const (
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusFailed  SyncStatus = "failed"
	SyncStatusPending SyncStatus = "pending"
)

// SyncLog records one exchange attempt with 1C, successful or not.
// ResponseData keeps the raw reply for troubleshooting.
type SyncLog struct {
	ID            uint64
	DocumentID    uint64
	IntegrationID uint64
	Type          SyncType
	Status        SyncStatus
	Message       string
	ResponseData  []byte
	CreatedAt     time.Time
}
