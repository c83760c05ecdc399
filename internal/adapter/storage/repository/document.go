package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/dibekkz/dibek/internal/core/port"
	"github.com/jackc/pgx/v5"
)

const documentColumns = "id, document_type, number, order_id, seller_id, buyer_id, " +
	"issued_at, due_at, subtotal, vat_rate, vat_amount, total, status, notes, created_at, updated_at"

// CreateDocument claims the next number in the per-seller monthly sequence
// and stores the document with its items in one transaction.
func (r *Repository) CreateDocument(ctx context.Context, document *domain.Document) (*domain.Document, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		year := document.IssuedAt.Year()
		month := document.IssuedAt.Month()

		seqSt := r.db.QueryBuilder.
			Insert("document_sequences").
			Columns("document_type", "seller_id", "period_year", "period_month", "last_value").
			Values(document.Type, document.SellerID, year, int(month), 1).
			Suffix("ON CONFLICT (document_type, seller_id, period_year, period_month) " +
				"DO UPDATE SET last_value = document_sequences.last_value + 1 " +
				"RETURNING last_value")

		sql, args, err := seqSt.ToSql()
		if err != nil {
			return err
		}

		var seq uint64
		err = tx.QueryRow(ctx, sql, args...).Scan(&seq)
		if err != nil {
			return err
		}

		number, err := domain.FormatDocumentNumber(document.Type, year, month, seq)
		if err != nil {
			return err
		}
		document.Number = number

		docSt := r.db.QueryBuilder.
			Insert("documents").
			Columns("document_type", "number", "order_id", "seller_id", "buyer_id",
				"issued_at", "due_at", "subtotal", "vat_rate", "vat_amount", "total",
				"status", "notes").
			Values(document.Type, document.Number, document.OrderID, document.SellerID,
				document.BuyerID, document.IssuedAt, document.DueAt, document.Subtotal,
				document.VATRate, document.VATAmount, document.Total,
				document.Status, document.Notes).
			Suffix("RETURNING id, created_at, updated_at")

		sql, args, err = docSt.ToSql()
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, sql, args...).Scan(&document.ID, &document.CreatedAt, &document.UpdatedAt)
		if err != nil {
			return err
		}

		for i := range document.Items {
			item := &document.Items[i]
			item.DocumentID = document.ID

			itemSt := r.db.QueryBuilder.
				Insert("document_items").
				Columns("document_id", "title", "quantity", "unit_price", "total").
				Values(item.DocumentID, item.Title, item.Quantity, item.UnitPrice, item.Total).
				Suffix("RETURNING id")

			sql, args, err := itemSt.ToSql()
			if err != nil {
				return err
			}

			err = tx.QueryRow(ctx, sql, args...).Scan(&item.ID)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return document, nil
}

func (r *Repository) ReadDocument(ctx context.Context, documentID uint64) (*domain.Document, error) {
	statement := r.db.QueryBuilder.
		Select(documentColumns).
		From("documents").
		Where(sq.Eq{"id": documentID})

	return r.readDocument(ctx, statement)
}

func (r *Repository) ReadDocumentByNumber(ctx context.Context, number string) (*domain.Document, error) {
	statement := r.db.QueryBuilder.
		Select(documentColumns).
		From("documents").
		Where(sq.Eq{"number": number})

	return r.readDocument(ctx, statement)
}

func (r *Repository) readDocument(ctx context.Context, statement sq.SelectBuilder) (*domain.Document, error) {
	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	document := domain.Document{}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&document.ID,
		&document.Type,
		&document.Number,
		&document.OrderID,
		&document.SellerID,
		&document.BuyerID,
		&document.IssuedAt,
		&document.DueAt,
		&document.Subtotal,
		&document.VATRate,
		&document.VATAmount,
		&document.Total,
		&document.Status,
		&document.Notes,
		&document.CreatedAt,
		&document.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	items, err := r.listDocumentItems(ctx, document.ID)
	if err != nil {
		return nil, err
	}
	document.Items = items

	seller, err := r.ReadCompany(ctx, document.SellerID)
	if err != nil {
		return nil, err
	}
	document.Seller = seller

	buyer, err := r.ReadCompany(ctx, document.BuyerID)
	if err != nil {
		return nil, err
	}
	document.Buyer = buyer

	return &document, nil
}

func (r *Repository) listDocumentItems(ctx context.Context, documentID uint64) ([]domain.DocumentItem, error) {
	statement := r.db.QueryBuilder.
		Select("id", "document_id", "title", "quantity", "unit_price", "total").
		From("document_items").
		Where(sq.Eq{"document_id": documentID}).
		OrderBy("id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	items := make([]domain.DocumentItem, 0)
	for rows.Next() {
		item := domain.DocumentItem{}
		err := rows.Scan(
			&item.ID,
			&item.DocumentID,
			&item.Title,
			&item.Quantity,
			&item.UnitPrice,
			&item.Total,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return items, nil
}

// ListDocuments returns documents newest first, without items or companies.
func (r *Repository) ListDocuments(ctx context.Context, filter port.DocumentFilter) ([]*domain.Document, error) {
	statement := r.db.QueryBuilder.
		Select(documentColumns).
		From("documents").
		OrderBy("created_at DESC")

	if filter.Type != "" {
		statement = statement.Where(sq.Eq{"document_type": filter.Type})
	}
	if filter.Status != "" {
		statement = statement.Where(sq.Eq{"status": filter.Status})
	}
	if filter.OrderID != 0 {
		statement = statement.Where(sq.Eq{"order_id": filter.OrderID})
	}
	if filter.SellerID != 0 {
		statement = statement.Where(sq.Eq{"seller_id": filter.SellerID})
	}
	if filter.Limit != 0 {
		statement = statement.Limit(filter.Limit)
	}

	return r.listDocuments(ctx, statement)
}

// ListDocumentsUpdatedSince returns documents touched after since,
// oldest first, for the auto-sync sweep.
func (r *Repository) ListDocumentsUpdatedSince(ctx context.Context, since time.Time, limit uint64) ([]*domain.Document, error) {
	statement := r.db.QueryBuilder.
		Select(documentColumns).
		From("documents").
		Where(sq.Gt{"updated_at": since}).
		OrderBy("updated_at")

	if limit != 0 {
		statement = statement.Limit(limit)
	}

	return r.listDocuments(ctx, statement)
}

func (r *Repository) listDocuments(ctx context.Context, statement sq.SelectBuilder) ([]*domain.Document, error) {
	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	list := make([]*domain.Document, 0)
	for rows.Next() {
		document := domain.Document{}
		err := rows.Scan(
			&document.ID,
			&document.Type,
			&document.Number,
			&document.OrderID,
			&document.SellerID,
			&document.BuyerID,
			&document.IssuedAt,
			&document.DueAt,
			&document.Subtotal,
			&document.VATRate,
			&document.VATAmount,
			&document.Total,
			&document.Status,
			&document.Notes,
			&document.CreatedAt,
			&document.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &document)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

// UpdateDocumentStatus moves the document from one status to another.
// Returns ErrNoUpdatedData when the document is no longer in the from status.
func (r *Repository) UpdateDocumentStatus(ctx context.Context, documentID uint64, from, to domain.DocumentStatus) (*domain.Document, error) {
	statement := r.db.QueryBuilder.
		Update("documents").
		Set("status", to).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": documentID, "status": from})

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

	return r.ReadDocument(ctx, documentID)
}
