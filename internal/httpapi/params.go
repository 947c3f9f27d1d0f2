package httpapi

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// pagination reads page/limit query params with sane bounds.
func pagination(c *gin.Context) (limit, page int) {
	limit = defaultPageLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	page = 1
	if raw := c.Query("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}
	return limit, page
}

// pageMeta is the pagination block attached to list responses.
type pageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

func newPageMeta(total, page, limit int) pageMeta {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pageMeta{Total: total, Page: page, Limit: limit, TotalPages: pages}
}

func queryString(c *gin.Context, name string) *string {
	if raw := c.Query(name); raw != "" {
		return &raw
	}
	return nil
}

func queryFloat(c *gin.Context, name string) *float64 {
	if raw := c.Query(name); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return &f
		}
	}
	return nil
}

func queryBool(c *gin.Context, name string) *bool {
	if raw := c.Query(name); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			return &b
		}
	}
	return nil
}
