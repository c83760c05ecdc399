package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/dibekkz/dibek/internal/core/port"
	"github.com/jackc/pgx/v5"
)

// CreateOrder stores the order with its item snapshot and empties
// the source cart, all in one transaction.
func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order, cartID uint64) (*domain.Order, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		orderSt := r.db.QueryBuilder.
			Insert("orders").
			Columns("user_id", "status", "total").
			Values(order.UserID, order.Status, order.Total).
			Suffix("RETURNING id, created_at")

		sql, args, err := orderSt.ToSql()
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, sql, args...).Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			return err
		}

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID

			itemSt := r.db.QueryBuilder.
				Insert("order_items").
				Columns("order_id", "item_id", "title", "quantity", "unit_price", "line_total").
				Values(item.OrderID, item.ItemID, item.Title, item.Quantity, item.UnitPrice, item.LineTotal).
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

		clearSt := r.db.QueryBuilder.
			Delete("cart_items").
			Where(sq.Eq{"cart_id": cartID})

		sql, args, err = clearSt.ToSql()
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
		return nil, err
	}

	return order, nil
}

func (r *Repository) ReadOrder(ctx context.Context, orderID uint64) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select("id", "user_id", "status", "total", "created_at").
		From("orders").
		Where(sq.Eq{"id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order := domain.Order{}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&order.Total,
		&order.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	items, err := r.listOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *Repository) listOrderItems(ctx context.Context, orderID uint64) ([]domain.OrderItem, error) {
	statement := r.db.QueryBuilder.
		Select("id", "order_id", "item_id", "title", "quantity", "unit_price", "line_total").
		From("order_items").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		item := domain.OrderItem{}
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ItemID,
			&item.Title,
			&item.Quantity,
			&item.UnitPrice,
			&item.LineTotal,
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

func (r *Repository) ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select("id", "user_id", "status", "total", "created_at").
		From("orders").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order := domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.Status,
			&order.Total,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &order)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

// ApplyPayment locks the order, lets applyFn validate the payment against it,
// then stores the payment and the updated order status in one transaction.
func (r *Repository) ApplyPayment(ctx context.Context, payment *domain.Payment, applyFn port.ApplyPaymentFn) (*domain.Payment, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		orderSt := r.db.QueryBuilder.
			Select("id", "user_id", "status", "total", "created_at").
			From("orders").
			Where(sq.Eq{"id": payment.OrderID}).
			Suffix("FOR UPDATE")

		sql, args, err := orderSt.ToSql()
		if err != nil {
			return err
		}

		order := domain.Order{}

		err = tx.QueryRow(ctx, sql, args...).Scan(
			&order.ID,
			&order.UserID,
			&order.Status,
			&order.Total,
			&order.CreatedAt,
		)
		if err != nil {
			if err == pgx.ErrNoRows {
				return domain.ErrDataNotFound
			}
			return err
		}

		err = applyFn(payment, &order)
		if err != nil {
			return err
		}

		paymentSt := r.db.QueryBuilder.
			Insert("payments").
			Columns("user_id", "order_id", "amount", "status").
			Values(payment.UserID, payment.OrderID, payment.Amount, payment.Status).
			Suffix("RETURNING id, created_at")

		sql, args, err = paymentSt.ToSql()
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, sql, args...).Scan(&payment.ID, &payment.CreatedAt)
		if err != nil {
			return err
		}

		updateSt := r.db.QueryBuilder.
			Update("orders").
			Set("status", order.Status).
			Where(sq.Eq{"id": order.ID})

		sql, args, err = updateSt.ToSql()
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}

		payment.Order = &order

		return nil
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

func (r *Repository) ListPaymentsByUser(ctx context.Context, userID uint64) ([]*domain.Payment, error) {
	statement := r.db.QueryBuilder.
		Select("id", "user_id", "order_id", "amount", "status", "created_at").
		From("payments").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	list := make([]*domain.Payment, 0)
	for rows.Next() {
		payment := domain.Payment{}
		err := rows.Scan(
			&payment.ID,
			&payment.UserID,
			&payment.OrderID,
			&payment.Amount,
			&payment.Status,
			&payment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &payment)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}
