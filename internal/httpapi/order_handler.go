package httpapi

import (
	"errors"
	"net/http"

	"laundrilo-be/internal/httpx"
	"laundrilo-be/internal/middleware"
	"laundrilo-be/internal/order"
	"laundrilo-be/internal/validation"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

// OrderHandler serves checkout, listing, tracking, cancellation and
// reviews.
type OrderHandler struct {
	orders order.Service
	v      *validatorv10.Validate
}

func NewOrderHandler(orders order.Service, v *validatorv10.Validate) *OrderHandler {
	return &OrderHandler{orders: orders, v: v}
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	var req checkoutRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	items := make([]order.CheckoutItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, order.CheckoutItem{ServiceID: it.ServiceID, Quantity: it.Quantity})
	}

	o, err := h.orders.Checkout(c.Request.Context(), order.CheckoutParams{
		UserID:          userID,
		Items:           items,
		PickupAddress:   req.PickupAddress,
		DeliveryAddress: req.DeliveryAddress,
		PickupDate:      req.PickupDate,
		PickupTime:      req.PickupTime,
		Notes:           req.Notes,
	})
	if err != nil {
		respondOrderError(c, err)
		return
	}
	httpx.OK(c, http.StatusCreated, "order placed", gin.H{"order": o})
}

func (h *OrderHandler) List(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	limit, page := pagination(c)

	filter := order.ListFilter{Status: queryString(c, "status")}
	if !middleware.IsAdmin(c) {
		filter.UserID = &userID
	}

	orders, total, err := h.orders.GetOrders(c.Request.Context(), filter, limit, page)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, "orders retrieved", gin.H{
		"orders":     orders,
		"pagination": newPageMeta(total, page, limit),
	})
}

func (h *OrderHandler) GetByID(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	o, err := h.orders.GetOrderDetail(c.Request.Context(), c.Param("id"), userID, middleware.IsAdmin(c))
	if err != nil {
		respondOrderError(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, "order retrieved", gin.H{"order": o})
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	o, err := h.orders.Cancel(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, "order cancelled", gin.H{"order": o})
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	o, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, req.Message, req.Notes)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, "order status updated", gin.H{"order": o})
}

func (h *OrderHandler) Review(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	var req reviewRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	o, err := h.orders.Review(c.Request.Context(), c.Param("id"), userID, req.Rating, req.Review)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, "review submitted", gin.H{"order": o})
}

func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		httpx.Error(c, http.StatusNotFound, "order not found")
	case errors.Is(err, order.ErrUnauthorized):
		httpx.Error(c, http.StatusForbidden, "not allowed")
	case errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrServiceNotFound),
		errors.Is(err, order.ErrServiceInactive),
		errors.Is(err, order.ErrInvalidPickup),
		errors.Is(err, order.ErrPickupNotFuture),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrNotCancellable),
		errors.Is(err, order.ErrNotDelivered),
		errors.Is(err, order.ErrAlreadyReviewed),
		errors.Is(err, order.ErrInvalidRating):
		httpx.Error(c, http.StatusBadRequest, err.Error())
	default:
		httpx.Error(c, http.StatusInternalServerError, "something went wrong")
	}
}
