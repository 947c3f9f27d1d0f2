package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"laundrilo-be/internal/httpx"
	"laundrilo-be/internal/middleware"
	"laundrilo-be/internal/user"
	"laundrilo-be/internal/validation"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

// UserHandler serves profile self-service plus the admin account
// management routes.
type UserHandler struct {
	users user.Service
	v     *validatorv10.Validate
}

func NewUserHandler(users user.Service, v *validatorv10.Validate) *UserHandler {
	return &UserHandler{users: users, v: v}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	account, err := h.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondUserError(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, "profile retrieved", gin.H{"user": account})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	var req updateProfileRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	account, err := h.users.UpdateProfile(c.Request.Context(), user.UpdateProfileParams{
		UserID:  userID,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, "profile updated", gin.H{"user": account})
}

func (h *UserHandler) List(c *gin.Context) {
	limit, page := pagination(c)
	filter := user.ListFilter{
		Role:     queryString(c, "role"),
		IsActive: queryBool(c, "isActive"),
		Search:   queryString(c, "search"),
	}

	accounts, total, err := h.users.ListUsers(c.Request.Context(), filter, limit, page)
	if err != nil {
		respondUserError(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, "users retrieved", gin.H{
		"users":      accounts,
		"pagination": newPageMeta(total, page, limit),
	})
}

func (h *UserHandler) SetMembership(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httpx.Error(c, http.StatusBadRequest, "invalid user id")
		return
	}

	var req setMembershipRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	if err := h.users.SetMembershipTier(c.Request.Context(), targetID, req.MembershipTier); err != nil {
		respondUserError(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, "membership tier updated", nil)
}

func (h *UserHandler) SetStatus(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httpx.Error(c, http.StatusBadRequest, "invalid user id")
		return
	}

	var req setStatusRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	if err := h.users.SetActive(c.Request.Context(), targetID, *req.IsActive); err != nil {
		respondUserError(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, "account status updated", nil)
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		httpx.Error(c, http.StatusNotFound, "user not found")
	case errors.Is(err, user.ErrInvalidTier):
		httpx.Error(c, http.StatusBadRequest, "invalid membership tier")
	default:
		httpx.Error(c, http.StatusInternalServerError, "something went wrong")
	}
}
