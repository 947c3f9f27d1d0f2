package httpapi

import (
	"errors"
	"net/http"

	"laundrilo-be/internal/httpx"
	"laundrilo-be/internal/middleware"
	"laundrilo-be/internal/user"
	"laundrilo-be/internal/validation"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

// AuthHandler serves registration, login and the authenticated profile.
type AuthHandler struct {
	users user.Service
	v     *validatorv10.Validate
}

func NewAuthHandler(users user.Service, v *validatorv10.Validate) *AuthHandler {
	return &AuthHandler{users: users, v: v}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	ctx := c.Request.Context()
	token, account, err := h.users.Register(ctx, req.Name, req.Email, req.Password, req.Phone, req.Address)
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			httpx.Error(c, http.StatusBadRequest, "email is already registered")
			return
		}
		httpx.Error(c, http.StatusInternalServerError, "failed to register user")
		return
	}

	httpx.OK(c, http.StatusCreated, "registration successful", gin.H{
		"token": token,
		"user":  account,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	ctx := c.Request.Context()
	token, account, err := h.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials):
			httpx.Error(c, http.StatusUnauthorized, "invalid email or password")
		case errors.Is(err, user.ErrAccountDisabled):
			httpx.Error(c, http.StatusForbidden, "account is deactivated")
		default:
			httpx.Error(c, http.StatusInternalServerError, "failed to log in")
		}
		return
	}

	httpx.OK(c, http.StatusOK, "login successful", gin.H{
		"token": token,
		"user":  account,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		httpx.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	account, err := h.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			httpx.Error(c, http.StatusNotFound, "user not found")
			return
		}
		httpx.Error(c, http.StatusInternalServerError, "failed to load profile")
		return
	}

	httpx.OK(c, http.StatusOK, "profile retrieved", gin.H{"user": account})
}
