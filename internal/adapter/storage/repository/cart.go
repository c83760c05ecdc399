package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) CreateCart(ctx context.Context, userID uint64) (*domain.Cart, error) {
	statement := r.db.QueryBuilder.
		Insert("carts").
		Columns("user_id").
		Values(userID).
		Suffix("RETURNING id, created_at")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	cart := domain.Cart{UserID: userID}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&cart.ID, &cart.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	cart.Items = make([]domain.CartItem, 0)

	return &cart, nil
}

func (r *Repository) ReadCartByUser(ctx context.Context, userID uint64) (*domain.Cart, error) {
	statement := r.db.QueryBuilder.
		Select("id", "user_id", "created_at").
		From("carts").
		Where(sq.Eq{"user_id": userID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	cart := domain.Cart{}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	items, err := r.listCartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Items = items

	return &cart, nil
}

func (r *Repository) listCartItems(ctx context.Context, cartID uint64) ([]domain.CartItem, error) {
	statement := r.db.QueryBuilder.
		Select("ci.id", "ci.cart_id", "ci.item_id", "ci.quantity",
			"i.title", "i.price", "i.company_id", "i.category").
		From("cart_items ci").
		Join("items i ON i.id = ci.item_id").
		Where(sq.Eq{"ci.cart_id": cartID}).
		OrderBy("ci.id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	items := make([]domain.CartItem, 0)
	for rows.Next() {
		ci := domain.CartItem{}
		item := domain.Item{}
		err := rows.Scan(
			&ci.ID,
			&ci.CartID,
			&ci.ItemID,
			&ci.Quantity,
			&item.Title,
			&item.Price,
			&item.CompanyID,
			&item.Category,
		)
		if err != nil {
			return nil, err
		}
		item.ID = ci.ItemID
		ci.Item = &item
		items = append(items, ci)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return items, nil
}

// UpsertCartItem sets the position quantity, creating it on first add.
func (r *Repository) UpsertCartItem(ctx context.Context, cartID, itemID uint64, quantity uint32) error {
	statement := r.db.QueryBuilder.
		Insert("cart_items").
		Columns("cart_id", "item_id", "quantity").
		Values(cartID, itemID, quantity).
		Suffix("ON CONFLICT (cart_id, item_id) DO UPDATE SET quantity = EXCLUDED.quantity")

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteCartItem(ctx context.Context, cartID, itemID uint64) error {
	statement := r.db.QueryBuilder.
		Delete("cart_items").
		Where(sq.Eq{"cart_id": cartID, "item_id": itemID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	ct, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}

	return nil
}
