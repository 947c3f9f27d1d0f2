package user

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"laundrilo-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const accountColumns = `id, name, email, password_hash, phone, address, role,
	membership_tier, total_orders, total_spent, is_active, last_login,
	created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, params CreateAccountParams) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id int) (*Account, error)
	TouchLastLogin(ctx context.Context, id int) error
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Account, error)
	List(ctx context.Context, filter ListFilter, limit, page int) ([]Account, int, error)
	SetMembershipTier(ctx context.Context, id int, tier MembershipTier) error
	SetActive(ctx context.Context, id int, active bool) error
	RecordOrderPlacement(ctx context.Context, id int, amount float64) (*Account, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func scanAccount(row interface{ Scan(...any) error }) (*Account, error) {
	var a Account
	err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.Password, &a.Phone, &a.Address,
		&a.Role, &a.MembershipTier, &a.TotalOrders, &a.TotalSpent,
		&a.IsActive, &a.LastLogin, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Create(ctx context.Context, params CreateAccountParams) (*Account, error) {
	log := logger.FromCtx(ctx)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password_hash, phone, address, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+accountColumns,
		params.Name, params.Email, params.Password, params.Phone, params.Address, params.Role,
	)

	a, err := scanAccount(row)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == PgUniqueViolation {
			return nil, ErrEmailExists
		}
		log.Error("db: failed to insert user",
			zap.String("email", params.Email),
			zap.Error(err),
		)
		return nil, err
	}

	return a, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM users WHERE email = $1`, email)

	a, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	return a, err
}

func (r *repository) FindByID(ctx context.Context, id int) (*Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM users WHERE id = $1`, id)

	a, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	return a, err
}

func (r *repository) TouchLastLogin(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_login = NOW(), updated_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *repository) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Account, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE users SET
			name    = COALESCE($2, name),
			phone   = COALESCE($3, phone),
			address = COALESCE($4, address),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+accountColumns,
		params.UserID, params.Name, params.Phone, params.Address,
	)

	a, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	return a, err
}

func (r *repository) List(ctx context.Context, filter ListFilter, limit, page int) ([]Account, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

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

	if filter.Role != nil && *filter.Role != "" {
		args = append(args, *filter.Role)
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		where = append(where, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", len(args), len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE `+whereClause, args...,
	).Scan(&total); err != nil {
		log.Error("count query failed", zap.Error(err))
		return nil, 0, err
	}

	query := `SELECT ` + accountColumns + ` FROM users WHERE ` + whereClause +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	accounts := make([]Account, 0, limit)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return accounts, total, nil
}

func (r *repository) SetMembershipTier(ctx context.Context, id int, tier MembershipTier) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET membership_tier = $2, updated_at = NOW() WHERE id = $1`, id, tier)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) SetActive(ctx context.Context, id int, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// RecordOrderPlacement bumps the lifetime counters and recomputes the
// membership tier from the new total inside one transaction.
func (r *repository) RecordOrderPlacement(ctx context.Context, id int, amount float64) (*Account, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "RecordOrderPlacement"),
		zap.Int("user_id", id),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var totalSpent float64
	err = tx.QueryRowContext(ctx, `
		UPDATE users SET
			total_orders = total_orders + 1,
			total_spent  = total_spent + $2,
			updated_at   = NOW()
		WHERE id = $1
		RETURNING total_spent`,
		id, amount,
	).Scan(&totalSpent)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		log.Error("failed to bump counters", zap.Error(err))
		return nil, err
	}

	row := tx.QueryRowContext(ctx, `
		UPDATE users SET membership_tier = $2 WHERE id = $1
		RETURNING `+accountColumns,
		id, TierFor(totalSpent),
	)
	a, err := scanAccount(row)
	if err != nil {
		log.Error("failed to recompute tier", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return a, nil
}
