package cart

import (
	"context"
	"errors"

	"laundrilo-be/internal/catalog"
	"laundrilo-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	GetOrCreate(ctx context.Context, userID int) (*Cart, error)
	AddItem(ctx context.Context, userID int, serviceID string, quantity int) (*Cart, error)
	UpdateItemQuantity(ctx context.Context, userID int, serviceID string, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, userID int, serviceID string) (*Cart, error)
	Clear(ctx context.Context, userID int) (*Cart, error)
}

type service struct {
	repo        Repository
	catalogRepo catalog.Repository
}

func NewService(repo Repository, catalogRepo catalog.Repository) Service {
	return &service{repo: repo, catalogRepo: catalogRepo}
}

// GetOrCreate is the only creation path: a cart materializes lazily on
// first access, never at registration.
func (s *service) GetOrCreate(ctx context.Context, userID int) (*Cart, error) {
	c, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}
	return s.repo.Create(ctx, userID)
}

func (s *service) AddItem(ctx context.Context, userID int, serviceID string, quantity int) (*Cart, error) {
	log := logger.FromCtx(ctx)

	if quantity < MinLineQuantity || quantity > MaxLineQuantity {
		return nil, ErrInvalidQuantity
	}

	svc, err := s.catalogRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if !svc.IsActive {
		return nil, ErrServiceInactive
	}

	c, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Merge into an existing line for the same service instead of
	// duplicating it.
	idx := -1
	for i := range c.Items {
		if c.Items[i].ServiceID == serviceID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		c.Items[idx].Quantity += quantity
		if c.Items[idx].Quantity > MaxLineQuantity {
			return nil, ErrInvalidQuantity
		}
		c.Items[idx].Price = svc.Price
		c.Items[idx].ServiceName = svc.Name
	} else {
		c.Items = append(c.Items, CartItem{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			Quantity:    quantity,
			Price:       svc.Price,
		})
		idx = len(c.Items) - 1
	}

	if err := s.repo.UpsertItem(ctx, c.ID, c.Items[idx]); err != nil {
		return nil, err
	}

	log.Debug("cart item staged",
		zap.Int("user_id", userID),
		zap.String("service_id", serviceID),
		zap.Int("quantity", c.Items[idx].Quantity),
	)

	return s.persistTotals(ctx, c)
}

func (s *service) UpdateItemQuantity(ctx context.Context, userID int, serviceID string, quantity int) (*Cart, error) {
	// Zero or negative means remove, not store a zero-quantity line.
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, serviceID)
	}
	if quantity > MaxLineQuantity {
		return nil, ErrInvalidQuantity
	}

	c, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range c.Items {
		if c.Items[i].ServiceID == serviceID {
			c.Items[i].Quantity = quantity
			if err := s.repo.UpsertItem(ctx, c.ID, c.Items[i]); err != nil {
				return nil, err
			}
			found = true
			break
		}
	}
	if !found {
		return nil, ErrCartItemNotFound
	}

	return s.persistTotals(ctx, c)
}

func (s *service) RemoveItem(ctx context.Context, userID int, serviceID string) (*Cart, error) {
	c, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.RemoveItem(ctx, c.ID, serviceID); err != nil {
		return nil, err
	}

	kept := c.Items[:0]
	for _, it := range c.Items {
		if it.ServiceID != serviceID {
			kept = append(kept, it)
		}
	}
	c.Items = kept

	return s.persistTotals(ctx, c)
}

func (s *service) Clear(ctx context.Context, userID int) (*Cart, error) {
	c, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ClearItems(ctx, c.ID); err != nil {
		return nil, err
	}
	c.Items = []CartItem{}

	return s.persistTotals(ctx, c)
}

// persistTotals recomputes the derived fields from the item list and
// writes them before returning the cart.
func (s *service) persistTotals(ctx context.Context, c *Cart) (*Cart, error) {
	c.RecomputeTotals()
	if err := s.repo.UpdateTotals(ctx, c.ID, c.TotalItems, c.TotalPrice); err != nil {
		return nil, err
	}
	return c, nil
}
