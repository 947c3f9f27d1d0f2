package httpapi

import (
	"errors"
	"net/http"

	"laundrilo-be/internal/cart"
	"laundrilo-be/internal/httpx"
	"laundrilo-be/internal/middleware"
	"laundrilo-be/internal/validation"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

// CartHandler serves the authenticated caller's cart.
type CartHandler struct {
	carts cart.Service
	v     *validatorv10.Validate
}

func NewCartHandler(carts cart.Service, v *validatorv10.Validate) *CartHandler {
	return &CartHandler{carts: carts, v: v}
}

func (h *CartHandler) Get(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	crt, err := h.carts.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, "cart retrieved", gin.H{"cart": crt})
}

func (h *CartHandler) AddItem(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	var req addCartItemRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	crt, err := h.carts.AddItem(c.Request.Context(), userID, req.ServiceID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, "item added to cart", gin.H{"cart": crt})
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	var req updateCartItemRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	crt, err := h.carts.UpdateItemQuantity(c.Request.Context(), userID, c.Param("serviceId"), req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, "cart item updated", gin.H{"cart": crt})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	crt, err := h.carts.RemoveItem(c.Request.Context(), userID, c.Param("serviceId"))
	if err != nil {
		respondCartError(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, "item removed from cart", gin.H{"cart": crt})
}

func (h *CartHandler) Clear(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	crt, err := h.carts.Clear(c.Request.Context(), userID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, "cart cleared", gin.H{"cart": crt})
}

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrCartItemNotFound):
		httpx.Error(c, http.StatusNotFound, "item not found in cart")
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrServiceNotFound),
		errors.Is(err, cart.ErrServiceInactive):
		httpx.Error(c, http.StatusBadRequest, err.Error())
	default:
		httpx.Error(c, http.StatusInternalServerError, "something went wrong")
	}
}
