package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) CreateCompany(ctx context.Context, company *domain.Company) (*domain.Company, error) {
	statement := r.db.QueryBuilder.
		Insert("companies").
		Columns("name", "bin", "kind", "category", "reg_status", "verified").
		Values(company.Name, company.BIN, company.Kind, company.Category, company.RegStatus, company.Verified).
		Suffix("RETURNING id, created_at")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&company.ID, &company.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return company, nil
}

func (r *Repository) ReadCompany(ctx context.Context, companyID uint64) (*domain.Company, error) {
	statement := r.db.QueryBuilder.
		Select("id", "name", "bin", "kind", "category", "reg_status", "verified", "created_at").
		From("companies").
		Where(sq.Eq{"id": companyID})

	return r.readCompany(ctx, statement)
}

func (r *Repository) GetCompanyByBIN(ctx context.Context, bin string) (*domain.Company, error) {
	statement := r.db.QueryBuilder.
		Select("id", "name", "bin", "kind", "category", "reg_status", "verified", "created_at").
		From("companies").
		Where(sq.Eq{"bin": bin})

	return r.readCompany(ctx, statement)
}

func (r *Repository) readCompany(ctx context.Context, statement sq.SelectBuilder) (*domain.Company, error) {
	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	company := domain.Company{}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&company.ID,
		&company.Name,
		&company.BIN,
		&company.Kind,
		&company.Category,
		&company.RegStatus,
		&company.Verified,
		&company.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &company, nil
}

// ListCompanies returns companies ordered by name, filtered by a
// case-insensitive match on name, kind or category when search is set.
func (r *Repository) ListCompanies(ctx context.Context, search string) ([]*domain.Company, error) {
	statement := r.db.QueryBuilder.
		Select("id", "name", "bin", "kind", "category", "reg_status", "verified", "created_at").
		From("companies").
		OrderBy("name")

	if search != "" {
		pattern := "%" + search + "%"
		statement = statement.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"kind": pattern},
			sq.ILike{"category": pattern},
		})
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	list := make([]*domain.Company, 0)
	for rows.Next() {
		company := domain.Company{}
		err := rows.Scan(
			&company.ID,
			&company.Name,
			&company.BIN,
			&company.Kind,
			&company.Category,
			&company.RegStatus,
			&company.Verified,
			&company.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &company)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (r *Repository) CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	statement := r.db.QueryBuilder.
		Insert("items").
		Columns("title", "price", "company_id", "category").
		Values(item.Title, item.Price, item.CompanyID, item.Category).
		Suffix("RETURNING id, created_at")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *Repository) ReadItem(ctx context.Context, itemID uint64) (*domain.Item, error) {
	statement := r.db.QueryBuilder.
		Select("i.id", "i.title", "i.price", "i.company_id", "i.category", "i.created_at",
			"c.id", "c.name", "c.bin", "c.kind", "c.category", "c.reg_status", "c.verified", "c.created_at").
		From("items i").
		Join("companies c ON c.id = i.company_id").
		Where(sq.Eq{"i.id": itemID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	item := domain.Item{}
	company := domain.Company{}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&item.ID,
		&item.Title,
		&item.Price,
		&item.CompanyID,
		&item.Category,
		&item.CreatedAt,
		&company.ID,
		&company.Name,
		&company.BIN,
		&company.Kind,
		&company.Category,
		&company.RegStatus,
		&company.Verified,
		&company.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	item.Company = &company

	return &item, nil
}

func (r *Repository) ListItems(ctx context.Context, companyID uint64, category string) ([]*domain.Item, error) {
	statement := r.db.QueryBuilder.
		Select("id", "title", "price", "company_id", "category", "created_at").
		From("items").
		OrderBy("title")

	if companyID != 0 {
		statement = statement.Where(sq.Eq{"company_id": companyID})
	}
	if category != "" {
		statement = statement.Where(sq.Eq{"category": category})
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	list := make([]*domain.Item, 0)
	for rows.Next() {
		item := domain.Item{}
		err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Price,
			&item.CompanyID,
			&item.Category,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &item)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}
