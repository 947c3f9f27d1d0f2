package catalog

import (
	"context"
	"fmt"

	"laundrilo-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateServiceParams struct {
	Name           string
	Description    string
	Price          float64
	Category       string
	ProcessingTime string
	IsPopular      bool
	Tags           []string
	MinQuantity    int
	MaxQuantity    int
}

type ManagerService interface {
	Create(ctx context.Context, params CreateServiceParams) (*Service, error)
	Update(ctx context.Context, params UpdateServiceParams) (*Service, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Service, error)
	Query(ctx context.Context, filter QueryFilter, limit, page int) ([]Service, int, error)
}

type managerService struct {
	repo Repository
}

func NewService(repo Repository) ManagerService {
	return &managerService{repo: repo}
}

func validateCreate(params CreateServiceParams) error {
	if !ValidCategory(params.Category) {
		return ErrInvalidCategory
	}
	if !ValidProcessingTime(params.ProcessingTime) {
		return ErrInvalidProcessingTime
	}
	if params.Price < 0 {
		return ErrInvalidPrice
	}
	if params.MinQuantity < 0 || params.MaxQuantity < 0 ||
		(params.MaxQuantity > 0 && params.MinQuantity > params.MaxQuantity) {
		return ErrInvalidQuantityBounds
	}
	return nil
}

func (s *managerService) Create(ctx context.Context, params CreateServiceParams) (*Service, error) {
	log := logger.FromCtx(ctx)

	if err := validateCreate(params); err != nil {
		return nil, err
	}

	minQty := params.MinQuantity
	if minQty == 0 {
		minQty = 1
	}
	maxQty := params.MaxQuantity
	if maxQty == 0 {
		maxQty = 50
	}

	svc := &Service{
		ID:             uuid.NewString(),
		Name:           params.Name,
		Description:    params.Description,
		Price:          params.Price,
		Category:       Category(params.Category),
		ProcessingTime: ProcessingTime(params.ProcessingTime),
		IsPopular:      params.IsPopular,
		Tags:           params.Tags,
		MinQuantity:    minQty,
		MaxQuantity:    maxQty,
	}

	created, err := s.repo.Create(ctx, svc)
	if err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	log.Info("service created",
		zap.String("service_id", created.ID),
		zap.String("category", string(created.Category)),
	)

	return created, nil
}

func (s *managerService) Update(ctx context.Context, params UpdateServiceParams) (*Service, error) {
	if params.Category != nil && !ValidCategory(*params.Category) {
		return nil, ErrInvalidCategory
	}
	if params.ProcessingTime != nil && !ValidProcessingTime(*params.ProcessingTime) {
		return nil, ErrInvalidProcessingTime
	}
	if params.Price != nil && *params.Price < 0 {
		return nil, ErrInvalidPrice
	}

	return s.repo.Update(ctx, params)
}

func (s *managerService) Delete(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *managerService) GetByID(ctx context.Context, id string) (*Service, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *managerService) Query(ctx context.Context, filter QueryFilter, limit, page int) ([]Service, int, error) {
	return s.repo.List(ctx, filter, limit, page)
}
