package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/dibekkz/dibek/internal/adapter/storage"
	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

func isUniqueViolation(err error) bool {
	pgErr, ok := err.(*pgconn.PgError)
	return ok && pgErr.Code == pgerrcode.UniqueViolation
}

// CreateUser stores the user and an empty cart for them in one transaction.
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		userSt := r.db.QueryBuilder.
			Insert("users").
			Columns("bin", "email", "password").
			Values(user.BIN, user.Email, user.Password).
			Suffix("returning id, verified, created_at")

		sql, args, err := userSt.ToSql()
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.Verified, &user.CreatedAt)
		if err != nil {
			return err
		}

		cartSt := r.db.QueryBuilder.
			Insert("carts").
			Columns("user_id").
			Values(user.ID)

		sql, args, err = cartSt.ToSql()
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByBIN(ctx context.Context, bin string) (*domain.User, error) {
	statement := r.db.QueryBuilder.
		Select("id", "bin", "email", "password", "verified", "created_at").
		From("users").
		Where(sq.Eq{"bin": bin})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	user := domain.User{}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID,
		&user.BIN,
		&user.Email,
		&user.Password,
		&user.Verified,
		&user.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &user, nil
}
