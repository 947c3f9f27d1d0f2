package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"laundrilo-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const serviceColumns = `id, name, description, price, category, processing_time,
	is_active, is_popular, tags, min_quantity, max_quantity, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, s *Service) (*Service, error)
	GetByID(ctx context.Context, id string) (*Service, error)
	List(ctx context.Context, filter QueryFilter, limit, page int) ([]Service, int, error)
	Update(ctx context.Context, params UpdateServiceParams) (*Service, error)
	Deactivate(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func scanService(row interface{ Scan(...any) error }) (*Service, error) {
	var s Service
	err := row.Scan(
		&s.ID, &s.Name, &s.Description, &s.Price, &s.Category, &s.ProcessingTime,
		&s.IsActive, &s.IsPopular, pq.Array(&s.Tags), &s.MinQuantity, &s.MaxQuantity,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Create(ctx context.Context, s *Service) (*Service, error) {
	log := logger.FromCtx(ctx)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO services (
			id, name, description, price, category, processing_time,
			is_popular, tags, min_quantity, max_quantity
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING `+serviceColumns,
		s.ID, s.Name, s.Description, s.Price, s.Category, s.ProcessingTime,
		s.IsPopular, pq.Array(s.Tags), s.MinQuantity, s.MaxQuantity,
	)

	created, err := scanService(row)
	if err != nil {
		log.Error("db: failed to insert service", zap.String("name", s.Name), zap.Error(err))
		return nil, err
	}
	return created, nil
}

// GetByID resolves any service, active or not, so historical orders can
// still populate their line items after a soft delete.
func (r *repository) GetByID(ctx context.Context, id string) (*Service, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE id = $1`, id)

	s, err := scanService(row)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	return s, err
}

func (r *repository) List(ctx context.Context, filter QueryFilter, limit, page int) ([]Service, int, error) {
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

	where := []string{"is_active = TRUE"}
	args := []any{}

	if filter.Category != nil && *filter.Category != "" {
		args = append(args, *filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		where = append(where, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		where = append(where, fmt.Sprintf("price <= $%d", len(args)))
	}
	if filter.Popular != nil {
		args = append(args, *filter.Popular)
		where = append(where, fmt.Sprintf("is_popular = $%d", len(args)))
	}

	selectCols := serviceColumns
	orderBy := "category, price ASC"

	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		n := len(args)
		// Name matches outrank tag matches, which outrank description matches.
		selectCols += fmt.Sprintf(`,
			(CASE WHEN name ILIKE $%d THEN 4 ELSE 0 END
			+ CASE WHEN array_to_string(tags, ' ') ILIKE $%d THEN 2 ELSE 0 END
			+ CASE WHEN description ILIKE $%d THEN 1 ELSE 0 END) AS relevance`, n, n, n)
		where = append(where, fmt.Sprintf(
			"(name ILIKE $%d OR description ILIKE $%d OR array_to_string(tags, ' ') ILIKE $%d)", n, n, n))
		orderBy = "relevance DESC, price ASC"
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM services WHERE `+whereClause, args...,
	).Scan(&total); err != nil {
		log.Error("count query failed", zap.Error(err))
		return nil, 0, err
	}

	query := `SELECT ` + selectCols + ` FROM services WHERE ` + whereClause +
		` ORDER BY ` + orderBy +
		fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, 0, err
	}
	defer rows.Close()

	withRelevance := filter.Search != nil && *filter.Search != ""

	services := make([]Service, 0, limit)
	for rows.Next() {
		var s Service
		dest := []any{
			&s.ID, &s.Name, &s.Description, &s.Price, &s.Category, &s.ProcessingTime,
			&s.IsActive, &s.IsPopular, pq.Array(&s.Tags), &s.MinQuantity, &s.MaxQuantity,
			&s.CreatedAt, &s.UpdatedAt,
		}
		if withRelevance {
			var relevance int
			dest = append(dest, &relevance)
		}
		if err := rows.Scan(dest...); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, err
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	log.Debug("query success",
		zap.Int("rows", len(services)),
		zap.Duration("duration", time.Since(start)),
	)

	return services, total, nil
}

func (r *repository) Update(ctx context.Context, params UpdateServiceParams) (*Service, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE services SET
			name            = COALESCE($2, name),
			description     = COALESCE($3, description),
			price           = COALESCE($4, price),
			category        = COALESCE($5, category),
			processing_time = COALESCE($6, processing_time),
			is_popular      = COALESCE($7, is_popular),
			tags            = COALESCE($8, tags),
			min_quantity    = COALESCE($9, min_quantity),
			max_quantity    = COALESCE($10, max_quantity),
			updated_at      = NOW()
		WHERE id = $1
		RETURNING `+serviceColumns,
		params.ID, params.Name, params.Description, params.Price,
		params.Category, params.ProcessingTime, params.IsPopular,
		tagsOrNil(params.Tags), params.MinQuantity, params.MaxQuantity,
	)

	s, err := scanService(row)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	return s, err
}

func tagsOrNil(tags []string) any {
	if tags == nil {
		return nil
	}
	return pq.Array(tags)
}

// Deactivate is the soft delete: rows are never removed so historical
// orders keep a valid reference.
func (r *repository) Deactivate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE services SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrServiceNotFound
	}
	return nil
}
