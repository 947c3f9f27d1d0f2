package httpapi

import (
	"errors"
	"net/http"

	"laundrilo-be/internal/catalog"
	"laundrilo-be/internal/httpx"
	"laundrilo-be/internal/validation"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

// CatalogHandler serves the public service catalog and the admin
// management routes.
type CatalogHandler struct {
	catalog catalog.ManagerService
	v       *validatorv10.Validate
}

func NewCatalogHandler(svc catalog.ManagerService, v *validatorv10.Validate) *CatalogHandler {
	return &CatalogHandler{catalog: svc, v: v}
}

func (h *CatalogHandler) List(c *gin.Context) {
	limit, page := pagination(c)
	filter := catalog.QueryFilter{
		Category: queryString(c, "category"),
		MinPrice: queryFloat(c, "minPrice"),
		MaxPrice: queryFloat(c, "maxPrice"),
		Popular:  queryBool(c, "popular"),
		Search:   queryString(c, "search"),
	}

	services, total, err := h.catalog.Query(c.Request.Context(), filter, limit, page)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, "services retrieved", gin.H{
		"services":   services,
		"pagination": newPageMeta(total, page, limit),
	})
}

func (h *CatalogHandler) GetByID(c *gin.Context) {
	svc, err := h.catalog.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, "service retrieved", gin.H{"service": svc})
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var req createServiceRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	svc, err := h.catalog.Create(c.Request.Context(), catalog.CreateServiceParams{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Category:       req.Category,
		ProcessingTime: req.ProcessingTime,
		IsPopular:      req.IsPopular,
		Tags:           req.Tags,
		MinQuantity:    req.MinQuantity,
		MaxQuantity:    req.MaxQuantity,
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	httpx.OK(c, http.StatusCreated, "service created", gin.H{"service": svc})
}

func (h *CatalogHandler) Update(c *gin.Context) {
	var req updateServiceRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	svc, err := h.catalog.Update(c.Request.Context(), catalog.UpdateServiceParams{
		ID:             c.Param("id"),
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Category:       req.Category,
		ProcessingTime: req.ProcessingTime,
		IsPopular:      req.IsPopular,
		Tags:           req.Tags,
		MinQuantity:    req.MinQuantity,
		MaxQuantity:    req.MaxQuantity,
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, "service updated", gin.H{"service": svc})
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondCatalogError(c, err)
		return
	}
	httpx.OK(c, http.StatusOK, "service deactivated", nil)
}

func respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrServiceNotFound):
		httpx.Error(c, http.StatusNotFound, "service not found")
	case errors.Is(err, catalog.ErrInvalidCategory),
		errors.Is(err, catalog.ErrInvalidProcessingTime),
		errors.Is(err, catalog.ErrInvalidPrice),
		errors.Is(err, catalog.ErrInvalidQuantityBounds):
		httpx.Error(c, http.StatusBadRequest, err.Error())
	default:
		httpx.Error(c, http.StatusInternalServerError, "something went wrong")
	}
}
