package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"laundrilo-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Authenticate())
	chain := append(handlers, func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	r.GET("/probe", chain...)
	return r
}

func TestAuthenticate(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("ValidToken", func(t *testing.T) {
		token, err := user.GenerateJWT(7, string(user.RoleCustomer), "mira@example.com")
		require.NoError(t, err)

		r := newAuthRouter(RequireAuth())
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":7`)
	})

	t.Run("MissingTokenRejected", func(t *testing.T) {
		r := newAuthRouter(RequireAuth())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("GarbageTokenRejected", func(t *testing.T) {
		r := newAuthRouter(RequireAuth())
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("AdminAllowed", func(t *testing.T) {
		token, err := user.GenerateJWT(1, string(user.RoleAdmin), "ops@laundrilo.io")
		require.NoError(t, err)

		r := newAuthRouter(RequireAuth(), RequireAdmin())
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("CustomerForbidden", func(t *testing.T) {
		token, err := user.GenerateJWT(2, string(user.RoleCustomer), "mira@example.com")
		require.NoError(t, err)

		r := newAuthRouter(RequireAuth(), RequireAdmin())
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("AnonymousUnauthorized", func(t *testing.T) {
		r := newAuthRouter(RequireAdmin())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(1, 2)

	r := gin.New()
	r.Use(rl.Handle())
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.RemoteAddr = "203.0.113.9:51000"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// A different client gets its own bucket.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.RemoteAddr = "198.51.100.4:51000"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
