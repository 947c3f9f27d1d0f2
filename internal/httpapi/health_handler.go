package httpapi

import (
	"database/sql"
	"net/http"
	"time"

	"laundrilo-be/internal/httpx"
	"laundrilo-be/internal/metrics"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness plus coarse process counters.
type HealthHandler struct {
	db  *sql.DB
	reg *metrics.Registry
}

func NewHealthHandler(db *sql.DB, reg *metrics.Registry) *HealthHandler {
	return &HealthHandler{db: db, reg: reg}
}

func (h *HealthHandler) Check(c *gin.Context) {
	dbStatus := "up"
	code := http.StatusOK
	if h.db != nil {
		if err := h.db.PingContext(c.Request.Context()); err != nil {
			dbStatus = "down"
			code = http.StatusServiceUnavailable
		}
	}

	httpx.OK(c, code, "health check", gin.H{
		"database":  dbStatus,
		"uptime":    h.reg.Uptime().Round(time.Second).String(),
		"requests":  h.reg.Requests.Load(),
		"errors":    h.reg.Errors.Load(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// countRequests feeds the registry from the request path.
func countRequests(reg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		reg.Requests.Inc()
		c.Next()
		if c.Writer.Status() >= http.StatusInternalServerError {
			reg.Errors.Inc()
		}
	}
}
