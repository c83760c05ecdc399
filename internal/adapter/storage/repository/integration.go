package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// maxSyncLogEntries caps sync log listings.
const maxSyncLogEntries = 1000

const integrationColumns = "id, name, integration_type, endpoint_url, username, password, " +
	"export_path, file_format, auto_sync, sync_interval, last_sync_at, active, created_at"

func (r *Repository) CreateIntegration(ctx context.Context, integration *domain.Integration) (*domain.Integration, error) {
	statement := r.db.QueryBuilder.
		Insert("onec_integrations").
		Columns("name", "integration_type", "endpoint_url", "username", "password",
			"export_path", "file_format", "auto_sync", "sync_interval", "active").
		Values(integration.Name, integration.Type, integration.EndpointURL,
			integration.Username, integration.Password, integration.ExportPath,
			integration.FileFormat, integration.AutoSync, integration.SyncInterval,
			integration.Active).
		Suffix("RETURNING id, created_at")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&integration.ID, &integration.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return integration, nil
}

func (r *Repository) ReadIntegration(ctx context.Context, integrationID uint64) (*domain.Integration, error) {
	statement := r.db.QueryBuilder.
		Select(integrationColumns).
		From("onec_integrations").
		Where(sq.Eq{"id": integrationID})

	return r.readIntegration(ctx, statement)
}

// GetActiveIntegration returns the first active integration.
func (r *Repository) GetActiveIntegration(ctx context.Context) (*domain.Integration, error) {
	statement := r.db.QueryBuilder.
		Select(integrationColumns).
		From("onec_integrations").
		Where(sq.Eq{"active": true}).
		OrderBy("id").
		Limit(1)

	return r.readIntegration(ctx, statement)
}

func (r *Repository) readIntegration(ctx context.Context, statement sq.SelectBuilder) (*domain.Integration, error) {
	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	integration := domain.Integration{}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&integration.ID,
		&integration.Name,
		&integration.Type,
		&integration.EndpointURL,
		&integration.Username,
		&integration.Password,
		&integration.ExportPath,
		&integration.FileFormat,
		&integration.AutoSync,
		&integration.SyncInterval,
		&integration.LastSyncAt,
		&integration.Active,
		&integration.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &integration, nil
}

func (r *Repository) ListIntegrations(ctx context.Context) ([]*domain.Integration, error) {
	statement := r.db.QueryBuilder.
		Select(integrationColumns).
		From("onec_integrations").
		OrderBy("id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	list := make([]*domain.Integration, 0)
	for rows.Next() {
		integration := domain.Integration{}
		err := rows.Scan(
			&integration.ID,
			&integration.Name,
			&integration.Type,
			&integration.EndpointURL,
			&integration.Username,
			&integration.Password,
			&integration.ExportPath,
			&integration.FileFormat,
			&integration.AutoSync,
			&integration.SyncInterval,
			&integration.LastSyncAt,
			&integration.Active,
			&integration.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &integration)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (r *Repository) UpdateIntegration(ctx context.Context, integration *domain.Integration) (*domain.Integration, error) {
	statement := r.db.QueryBuilder.
		Update("onec_integrations").
		Set("name", integration.Name).
		Set("integration_type", integration.Type).
		Set("endpoint_url", integration.EndpointURL).
		Set("username", integration.Username).
		Set("password", integration.Password).
		Set("export_path", integration.ExportPath).
		Set("file_format", integration.FileFormat).
		Set("auto_sync", integration.AutoSync).
		Set("sync_interval", integration.SyncInterval).
		Set("active", integration.Active).
		Where(sq.Eq{"id": integration.ID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	ct, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, domain.ErrNoUpdatedData
	}

	return r.ReadIntegration(ctx, integration.ID)
}

func (r *Repository) UpdateIntegrationSyncTime(ctx context.Context, integrationID uint64, syncedAt time.Time) error {
	statement := r.db.QueryBuilder.
		Update("onec_integrations").
		Set("last_sync_at", syncedAt).
		Where(sq.Eq{"id": integrationID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	ct, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNoUpdatedData
	}

	return nil
}

func (r *Repository) CreateSyncLog(ctx context.Context, log *domain.SyncLog) (*domain.SyncLog, error) {
	statement := r.db.QueryBuilder.
		Insert("document_sync_logs").
		Columns("document_id", "integration_id", "sync_type", "status", "message", "response_data").
		Values(log.DocumentID, log.IntegrationID, log.Type, log.Status, log.Message, log.ResponseData).
		Suffix("RETURNING id, created_at")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return nil, err
	}

	return log, nil
}

// ListSyncLogs returns sync logs newest first, for one document when
// documentID is set, capped at maxSyncLogEntries.
func (r *Repository) ListSyncLogs(ctx context.Context, documentID uint64) ([]*domain.SyncLog, error) {
	statement := r.db.QueryBuilder.
		Select("id", "document_id", "integration_id", "sync_type", "status", "message", "response_data", "created_at").
		From("document_sync_logs").
		OrderBy("created_at DESC").
		Limit(maxSyncLogEntries)

	if documentID != 0 {
		statement = statement.Where(sq.Eq{"document_id": documentID})
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	list := make([]*domain.SyncLog, 0)
	for rows.Next() {
		log := domain.SyncLog{}
		err := rows.Scan(
			&log.ID,
			&log.DocumentID,
			&log.IntegrationID,
			&log.Type,
			&log.Status,
			&log.Message,
			&log.ResponseData,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &log)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}
