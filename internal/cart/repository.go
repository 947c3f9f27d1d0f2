package cart

import (
	"context"
	"database/sql"

	"laundrilo-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// GetByUserID returns (nil, nil) when the user has no cart yet.
	GetByUserID(ctx context.Context, userID int) (*Cart, error)
	Create(ctx context.Context, userID int) (*Cart, error)
	UpsertItem(ctx context.Context, cartID int, item CartItem) error
	RemoveItem(ctx context.Context, cartID int, serviceID string) error
	ClearItems(ctx context.Context, cartID int) error
	UpdateTotals(ctx context.Context, cartID, totalItems int, totalPrice float64) error
	// ClearByUserID wipes the user's cart if one exists; it is a no-op
	// otherwise. Used as the post-checkout hygiene step.
	ClearByUserID(ctx context.Context, userID int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByUserID(ctx context.Context, userID int) (*Cart, error) {
	var c Cart
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, total_items, total_price, updated_at
		FROM carts WHERE user_id = $1`, userID,
	).Scan(&c.ID, &c.UserID, &c.TotalItems, &c.TotalPrice, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT service_id, service_name, quantity, price
		FROM cart_items WHERE cart_id = $1
		ORDER BY id`, c.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c.Items = make([]CartItem, 0, 4)
	for rows.Next() {
		var it CartItem
		if err := rows.Scan(&it.ServiceID, &it.ServiceName, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		c.Items = append(c.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) Create(ctx context.Context, userID int) (*Cart, error) {
	log := logger.FromCtx(ctx)

	var c Cart
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO carts (user_id) VALUES ($1)
		RETURNING id, user_id, total_items, total_price, updated_at`,
		userID,
	).Scan(&c.ID, &c.UserID, &c.TotalItems, &c.TotalPrice, &c.UpdatedAt)
	if err != nil {
		log.Error("db: failed to create cart", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}

	c.Items = []CartItem{}
	return &c, nil
}

func (r *repository) UpsertItem(ctx context.Context, cartID int, item CartItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items (cart_id, service_id, service_name, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (cart_id, service_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, price = EXCLUDED.price`,
		cartID, item.ServiceID, item.ServiceName, item.Quantity, item.Price,
	)
	return err
}

func (r *repository) RemoveItem(ctx context.Context, cartID int, serviceID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND service_id = $2`,
		cartID, serviceID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) ClearItems(ctx context.Context, cartID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}

func (r *repository) UpdateTotals(ctx context.Context, cartID, totalItems int, totalPrice float64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE carts SET total_items = $2, total_price = $3, updated_at = NOW()
		WHERE id = $1`,
		cartID, totalItems, totalPrice,
	)
	return err
}

func (r *repository) ClearByUserID(ctx context.Context, userID int) error {
	var cartID int
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM carts WHERE user_id = $1`, userID,
	).Scan(&cartID)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}

	if err := r.ClearItems(ctx, cartID); err != nil {
		return err
	}
	return r.UpdateTotals(ctx, cartID, 0, 0)
}
