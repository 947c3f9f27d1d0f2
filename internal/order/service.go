package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"laundrilo-be/internal/cart"
	"laundrilo-be/internal/catalog"
	"laundrilo-be/internal/logger"
	"laundrilo-be/internal/money"
	"laundrilo-be/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Checkout(ctx context.Context, params CheckoutParams) (*Order, error)
	GetOrders(ctx context.Context, filter ListFilter, limit, page int) ([]Order, int, error)
	GetOrderDetail(ctx context.Context, orderID string, userID int, isAdmin bool) (*Order, error)
	Cancel(ctx context.Context, orderID string, userID int) (*Order, error)
	UpdateStatus(ctx context.Context, orderID, status, message string, notes *string) (*Order, error)
	Review(ctx context.Context, orderID string, userID, rating int, review *string) (*Order, error)
}

type service struct {
	repo        Repository
	catalogRepo catalog.Repository
	accounts    user.Repository
	cartRepo    cart.Repository
}

func NewService(repo Repository, catalogRepo catalog.Repository, accounts user.Repository, cartRepo cart.Repository) Service {
	return &service{
		repo:        repo,
		catalogRepo: catalogRepo,
		accounts:    accounts,
		cartRepo:    cartRepo,
	}
}

// parsePickup combines the date and HH:MM time into one local timestamp.
func parsePickup(date, clock string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
}

// Checkout builds one order from the request payload. The cart is NOT
// the source of truth here: items come from the request body, and the
// cart clear at the end is a hygiene step only.
func (s *service) Checkout(ctx context.Context, params CheckoutParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(zap.Int("user_id", params.UserID))

	if len(params.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, it := range params.Items {
		if it.Quantity < 1 || it.Quantity > 50 {
			return nil, ErrInvalidQuantity
		}
	}

	pickupAt, err := parsePickup(params.PickupDate, params.PickupTime)
	if err != nil {
		return nil, ErrInvalidPickup
	}
	if !pickupAt.After(time.Now()) {
		return nil, ErrPickupNotFuture
	}

	// Resolve every service before writing anything: a single unknown
	// or inactive id aborts the whole order.
	items := make([]OrderItem, 0, len(params.Items))
	subtotal := 0.0
	slowest := time.Duration(0)
	for _, it := range params.Items {
		svc, err := s.catalogRepo.GetByID(ctx, it.ServiceID)
		if err != nil {
			if errors.Is(err, catalog.ErrServiceNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, it.ServiceID)
			}
			return nil, err
		}
		if !svc.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrServiceInactive, svc.Name)
		}

		lineSubtotal := money.LineSubtotal(svc.Price, it.Quantity)
		items = append(items, OrderItem{
			ServiceID: svc.ID,
			Name:      svc.Name,
			Quantity:  it.Quantity,
			Price:     svc.Price,
			Subtotal:  lineSubtotal,
		})
		subtotal += lineSubtotal

		if d := catalog.ProcessingDuration(svc.ProcessingTime); d > slowest {
			slowest = d
		}
	}

	subtotal = money.Round2(subtotal)
	tax := money.Tax(subtotal)
	total := money.Round2(subtotal + tax)

	now := time.Now()
	estimated := pickupAt.Add(slowest)

	o := &Order{
		ID:                uuid.NewString(),
		OrderNumber:       NewOrderNumber(now),
		UserID:            params.UserID,
		Items:             items,
		Subtotal:          subtotal,
		Tax:               tax,
		Total:             total,
		PickupAddress:     params.PickupAddress,
		DeliveryAddress:   params.DeliveryAddress,
		PickupDate:        params.PickupDate,
		PickupTime:        params.PickupTime,
		Status:            StatusPending,
		EstimatedDelivery: &estimated,
		Notes:             params.Notes,
		TrackingUpdates: []TrackingUpdate{{
			Status:    StatusPending,
			Message:   DefaultMessage(StatusPending),
			Timestamp: now,
		}},
	}

	if err := s.repo.CreateOrderTx(ctx, o); err != nil {
		return nil, err
	}

	// The two downstream writes are intentionally independent of the
	// order insert; failures are logged, not rolled back.
	acct, err := s.accounts.RecordOrderPlacement(ctx, params.UserID, total)
	if err != nil {
		log.Error("failed to update account counters after checkout",
			zap.String("order_id", o.ID), zap.Error(err))
	} else {
		o.Customer = &CustomerInfo{Name: acct.Name, Email: acct.Email, Phone: acct.Phone}
	}

	if err := s.cartRepo.ClearByUserID(ctx, params.UserID); err != nil {
		log.Warn("failed to clear cart after checkout",
			zap.String("order_id", o.ID), zap.Error(err))
	}

	log.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.Float64("total", total),
	)

	return o, nil
}

func (s *service) GetOrders(ctx context.Context, filter ListFilter, limit, page int) ([]Order, int, error) {
	if filter.Status != nil && *filter.Status != "" && !ValidStatus(*filter.Status) {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, filter, limit, page)
}

// GetOrderDetail hides other customers' orders behind a not-found
// rather than a forbidden, so order ids cannot be probed.
func (s *service) GetOrderDetail(ctx context.Context, orderID string, userID int, isAdmin bool) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) Cancel(ctx context.Context, orderID string, userID int) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	if !CustomerCancellable(o.Status) {
		return nil, ErrNotCancellable
	}

	msg := DefaultMessage(StatusCancelled)
	if err := s.repo.AppendStatus(ctx, orderID, StatusCancelled, msg, false, nil); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, orderID)
}

// UpdateStatus is the admin path: any enumerated status is accepted
// from any current state, without adjacency checks.
func (s *service) UpdateStatus(ctx context.Context, orderID, status, message string, notes *string) (*Order, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	next := Status(status)
	msg := message
	if msg == "" {
		msg = DefaultMessage(next)
	}

	if err := s.repo.AppendStatus(ctx, orderID, next, msg, next == StatusDelivered, notes); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, orderID)
}

func (s *service) Review(ctx context.Context, orderID string, userID, rating int, review *string) (*Order, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	if o.Status != StatusDelivered {
		return nil, ErrNotDelivered
	}
	if o.Rating != nil {
		return nil, ErrAlreadyReviewed
	}

	if err := s.repo.SetReview(ctx, orderID, rating, review); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, orderID)
}
