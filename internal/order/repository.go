package order

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"laundrilo-be/internal/logger"

	"go.uber.org/zap"
)

const orderColumns = `o.id, o.order_number, o.user_id, o.subtotal, o.tax, o.total,
	o.pickup_address, o.delivery_address, o.pickup_date, o.pickup_time, o.status,
	o.estimated_delivery, o.actual_delivery, o.rating, o.review, o.notes,
	o.created_at, o.updated_at, u.name, u.email, u.phone`

type Repository interface {
	// CreateOrderTx persists the order, its item snapshots and the
	// initial tracking entry in a single transaction.
	CreateOrderTx(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, orderID string) (*Order, error)
	List(ctx context.Context, filter ListFilter, limit, page int) ([]Order, int, error)
	// AppendStatus updates the order status and appends the tracking
	// entry in one transaction. stampDelivered also sets actual_delivery.
	AppendStatus(ctx context.Context, orderID string, status Status, message string, stampDelivered bool, notes *string) error
	SetReview(ctx context.Context, orderID string, rating int, review *string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	var cust CustomerInfo
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.Subtotal, &o.Tax, &o.Total,
		&o.PickupAddress, &o.DeliveryAddress, &o.PickupDate, &o.PickupTime, &o.Status,
		&o.EstimatedDelivery, &o.ActualDelivery, &o.Rating, &o.Review, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt, &cust.Name, &cust.Email, &cust.Phone,
	)
	if err != nil {
		return nil, err
	}
	o.Customer = &cust
	return &o, nil
}

func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.String("order_number", o.OrderNumber),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			id, order_number, user_id, subtotal, tax, total,
			pickup_address, delivery_address, pickup_date, pickup_time,
			status, estimated_delivery, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING created_at, updated_at`,
		o.ID, o.OrderNumber, o.UserID, o.Subtotal, o.Tax, o.Total,
		o.PickupAddress, o.DeliveryAddress, o.PickupDate, o.PickupTime,
		o.Status, o.EstimatedDelivery, o.Notes,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for _, it := range o.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, service_id, name, quantity, price, subtotal)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			o.ID, it.ServiceID, it.Name, it.Quantity, it.Price, it.Subtotal,
		); err != nil {
			log.Error("failed to insert order item", zap.String("service_id", it.ServiceID), zap.Error(err))
			return err
		}
	}

	for _, tu := range o.TrackingUpdates {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_tracking (order_id, status, message, created_at)
			VALUES ($1,$2,$3,$4)`,
			o.ID, tu.Status, tu.Message, tu.Timestamp,
		); err != nil {
			log.Error("failed to insert tracking entry", zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("order persisted", zap.String("order_id", o.ID))
	return nil
}

func (r *repository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		JOIN users u ON o.user_id = u.id
		WHERE o.id = $1`, orderID)

	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	if err := r.loadTracking(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (r *repository) loadItems(ctx context.Context, o *Order) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT service_id, name, quantity, price, subtotal
		FROM order_items WHERE order_id = $1 ORDER BY id`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	o.Items = make([]OrderItem, 0, 4)
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ServiceID, &it.Name, &it.Quantity, &it.Price, &it.Subtotal); err != nil {
			return err
		}
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}

func (r *repository) loadTracking(ctx context.Context, o *Order) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, message, created_at
		FROM order_tracking WHERE order_id = $1 ORDER BY id`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	o.TrackingUpdates = make([]TrackingUpdate, 0, 4)
	for rows.Next() {
		var tu TrackingUpdate
		if err := rows.Scan(&tu.Status, &tu.Message, &tu.Timestamp); err != nil {
			return err
		}
		o.TrackingUpdates = append(o.TrackingUpdates, tu)
	}
	return rows.Err()
}

func (r *repository) List(ctx context.Context, filter ListFilter, limit, page int) ([]Order, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	start := time.Now()

	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	where := []string{"1=1"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where = append(where, fmt.Sprintf("o.user_id = $%d", len(args)))
	}
	if filter.Status != nil && *filter.Status != "" {
		args = append(args, *filter.Status)
		where = append(where, fmt.Sprintf("o.status = $%d", len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders o WHERE `+whereClause, args...,
	).Scan(&total); err != nil {
		log.Error("count query failed", zap.Error(err))
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + `
		FROM orders o
		JOIN users u ON o.user_id = u.id
		WHERE ` + whereClause +
		fmt.Sprintf(` ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]Order, 0, limit)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	log.Debug("query success",
		zap.Int("rows", len(orders)),
		zap.Duration("duration", time.Since(start)),
	)

	return orders, total, nil
}

func (r *repository) AppendStatus(ctx context.Context, orderID string, status Status, message string, stampDelivered bool, notes *string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AppendStatus"),
		zap.String("order_id", orderID),
		zap.String("status", string(status)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var res sql.Result
	if stampDelivered {
		res, err = tx.ExecContext(ctx, `
			UPDATE orders SET status = $2, actual_delivery = NOW(),
				notes = COALESCE($3, notes), updated_at = NOW()
			WHERE id = $1`,
			orderID, status, notes)
	} else {
		res, err = tx.ExecContext(ctx, `
			UPDATE orders SET status = $2,
				notes = COALESCE($3, notes), updated_at = NOW()
			WHERE id = $1`,
			orderID, status, notes)
	}
	if err != nil {
		log.Error("failed to update status", zap.Error(err))
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO order_tracking (order_id, status, message, created_at)
		VALUES ($1,$2,$3,NOW())`,
		orderID, status, message,
	); err != nil {
		log.Error("failed to append tracking entry", zap.Error(err))
		return err
	}

	return tx.Commit()
}

func (r *repository) SetReview(ctx context.Context, orderID string, rating int, review *string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET rating = $2, review = $3, updated_at = NOW()
		WHERE id = $1 AND rating IS NULL`,
		orderID, rating, review)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the order vanished or a rating already exists; the
		// guard in the WHERE clause keeps the first review immutable.
		return ErrAlreadyReviewed
	}
	return nil
}
