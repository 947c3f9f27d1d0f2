package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"laundrilo-be/internal/cart"
	"laundrilo-be/internal/catalog"
	"laundrilo-be/internal/metrics"
	"laundrilo-be/internal/order"
	"laundrilo-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserService struct{ mock.Mock }

func (m *MockUserService) Register(ctx context.Context, name, email, password, phone, address string) (string, *user.Account, error) {
	args := m.Called(ctx, name, email, password, phone, address)
	var a *user.Account
	if args.Get(1) != nil {
		a = args.Get(1).(*user.Account)
	}
	return args.String(0), a, args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (string, *user.Account, error) {
	args := m.Called(ctx, email, password)
	var a *user.Account
	if args.Get(1) != nil {
		a = args.Get(1).(*user.Account)
	}
	return args.String(0), a, args.Error(2)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID int) (*user.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Account), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, params user.UpdateProfileParams) (*user.Account, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Account), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, filter user.ListFilter, limit, page int) ([]user.Account, int, error) {
	args := m.Called(ctx, filter, limit, page)
	var accounts []user.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]user.Account)
	}
	return accounts, args.Int(1), args.Error(2)
}

func (m *MockUserService) SetMembershipTier(ctx context.Context, userID int, tier string) error {
	return m.Called(ctx, userID, tier).Error(0)
}

func (m *MockUserService) SetActive(ctx context.Context, userID int, active bool) error {
	return m.Called(ctx, userID, active).Error(0)
}

func (m *MockUserService) RecordOrderPlacement(ctx context.Context, userID int, amount float64) (*user.Account, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Account), args.Error(1)
}

type MockCatalogService struct{ mock.Mock }

func (m *MockCatalogService) Create(ctx context.Context, params catalog.CreateServiceParams) (*catalog.Service, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Service), args.Error(1)
}

func (m *MockCatalogService) Update(ctx context.Context, params catalog.UpdateServiceParams) (*catalog.Service, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Service), args.Error(1)
}

func (m *MockCatalogService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalogService) GetByID(ctx context.Context, id string) (*catalog.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Service), args.Error(1)
}

func (m *MockCatalogService) Query(ctx context.Context, filter catalog.QueryFilter, limit, page int) ([]catalog.Service, int, error) {
	args := m.Called(ctx, filter, limit, page)
	var services []catalog.Service
	if args.Get(0) != nil {
		services = args.Get(0).([]catalog.Service)
	}
	return services, args.Int(1), args.Error(2)
}

type MockCartService struct{ mock.Mock }

func (m *MockCartService) GetOrCreate(ctx context.Context, userID int) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, userID int, serviceID string, quantity int) (*cart.Cart, error) {
	args := m.Called(ctx, userID, serviceID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) UpdateItemQuantity(ctx context.Context, userID int, serviceID string, quantity int) (*cart.Cart, error) {
	args := m.Called(ctx, userID, serviceID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, userID int, serviceID string) (*cart.Cart, error) {
	args := m.Called(ctx, userID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, userID int) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) Checkout(ctx context.Context, params order.CheckoutParams) (*order.Order, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrders(ctx context.Context, filter order.ListFilter, limit, page int) ([]order.Order, int, error) {
	args := m.Called(ctx, filter, limit, page)
	var orders []order.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]order.Order)
	}
	return orders, args.Int(1), args.Error(2)
}

func (m *MockOrderService) GetOrderDetail(ctx context.Context, orderID string, userID int, isAdmin bool) (*order.Order, error) {
	args := m.Called(ctx, orderID, userID, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) Cancel(ctx context.Context, orderID string, userID int) (*order.Order, error) {
	args := m.Called(ctx, orderID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID, status, message string, notes *string) (*order.Order, error) {
	args := m.Called(ctx, orderID, status, message, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) Review(ctx context.Context, orderID string, userID, rating int, review *string) (*order.Order, error) {
	args := m.Called(ctx, orderID, userID, rating, review)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type testMocks struct {
	users   *MockUserService
	catalog *MockCatalogService
	carts   *MockCartService
	orders  *MockOrderService
}

func newTestServer(t *testing.T) (*gin.Engine, testMocks) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := testMocks{
		users:   new(MockUserService),
		catalog: new(MockCatalogService),
		carts:   new(MockCartService),
		orders:  new(MockOrderService),
	}
	r := NewRouter(Deps{
		Users:    m.users,
		Catalog:  m.catalog,
		Carts:    m.carts,
		Orders:   m.orders,
		Registry: metrics.NewRegistry(),
	})
	return r, m
}

func bearerFor(t *testing.T, id int, role user.Role) string {
	t.Helper()
	token, err := user.GenerateJWT(id, string(role), "someone@example.com")
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(r *gin.Engine, method, path, auth string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRoute(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("Success", func(t *testing.T) {
		r, m := newTestServer(t)
		account := &user.Account{ID: 1, Name: "Test", Email: "t@x.com", MembershipTier: user.TierBronze}
		m.users.On("Register", mock.Anything, "Test", "t@x.com", "secret1", "+919876543210", "221B Baker Street").
			Return("tok-abc", account, nil)

		w := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
			"name":     "Test",
			"email":    "t@x.com",
			"password": "secret1",
			"phone":    "+919876543210",
			"address":  "221B Baker Street",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "tok-abc")
		m.users.AssertExpectations(t)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		r, m := newTestServer(t)
		m.users.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", nil, user.ErrEmailExists)

		w := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
			"name":     "Test",
			"email":    "t@x.com",
			"password": "secret1",
			"phone":    "+919876543210",
			"address":  "221B Baker Street",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "already registered")
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		r, _ := newTestServer(t)

		w := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
			"name":  "T",
			"email": "not-an-email",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "validation failed")
	})
}

func TestLoginRoute(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("BadCredentials", func(t *testing.T) {
		r, m := newTestServer(t)
		m.users.On("Login", mock.Anything, "t@x.com", "wrong").
			Return("", nil, user.ErrInvalidCredentials)

		w := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
			"email": "t@x.com", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("DisabledAccount", func(t *testing.T) {
		r, m := newTestServer(t)
		m.users.On("Login", mock.Anything, "t@x.com", "secret1").
			Return("", nil, user.ErrAccountDisabled)

		w := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
			"email": "t@x.com", "password": "secret1",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestServicesRoutes(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("PublicListPassesFilters", func(t *testing.T) {
		r, m := newTestServer(t)
		m.catalog.On("Query", mock.Anything, mock.MatchedBy(func(f catalog.QueryFilter) bool {
			return f.Category != nil && *f.Category == "wash-fold" &&
				f.MinPrice != nil && *f.MinPrice == 50 &&
				f.Popular != nil && *f.Popular
		}), 5, 2).Return([]catalog.Service{{ID: "svc-1", Name: "Wash & Fold"}}, 11, nil)

		w := doJSON(r, http.MethodGet, "/api/services?category=wash-fold&minPrice=50&popular=true&limit=5&page=2", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total":11`)
		assert.Contains(t, w.Body.String(), `"totalPages":3`)
	})

	t.Run("UnknownServiceIs404", func(t *testing.T) {
		r, m := newTestServer(t)
		m.catalog.On("GetByID", mock.Anything, "nope").Return(nil, catalog.ErrServiceNotFound)

		w := doJSON(r, http.MethodGet, "/api/services/nope", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("CreateRequiresAdmin", func(t *testing.T) {
		r, _ := newTestServer(t)

		w := doJSON(r, http.MethodPost, "/api/services", bearerFor(t, 3, user.RoleCustomer), gin.H{
			"name": "Wash", "description": "d", "price": 100,
			"category": "wash-fold", "processingTime": "24-hours",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("AdminCreates", func(t *testing.T) {
		r, m := newTestServer(t)
		m.catalog.On("Create", mock.Anything, mock.MatchedBy(func(p catalog.CreateServiceParams) bool {
			return p.Name == "Wash & Fold" && p.Price == 100
		})).Return(&catalog.Service{ID: "svc-1", Name: "Wash & Fold"}, nil)

		w := doJSON(r, http.MethodPost, "/api/services", bearerFor(t, 1, user.RoleAdmin), gin.H{
			"name": "Wash & Fold", "description": "per kg", "price": 100,
			"category": "wash-fold", "processingTime": "24-hours",
		})
		assert.Equal(t, http.StatusCreated, w.Code)
		m.catalog.AssertExpectations(t)
	})
}

func TestCartRoutes(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("RequiresAuth", func(t *testing.T) {
		r, _ := newTestServer(t)
		w := doJSON(r, http.MethodGet, "/api/cart", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("AddItem", func(t *testing.T) {
		r, m := newTestServer(t)
		m.carts.On("AddItem", mock.Anything, 4, "svc-1", 2).
			Return(&cart.Cart{UserID: 4, TotalPrice: 200}, nil)

		w := doJSON(r, http.MethodPost, "/api/cart", bearerFor(t, 4, user.RoleCustomer), gin.H{
			"serviceId": "svc-1", "quantity": 2,
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"totalPrice":200`)
	})

	t.Run("InactiveServiceRejected", func(t *testing.T) {
		r, m := newTestServer(t)
		m.carts.On("AddItem", mock.Anything, 4, "svc-dead", 1).
			Return(nil, cart.ErrServiceInactive)

		w := doJSON(r, http.MethodPost, "/api/cart", bearerFor(t, 4, user.RoleCustomer), gin.H{
			"serviceId": "svc-dead", "quantity": 1,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("RemoveMissingLineIs404", func(t *testing.T) {
		r, m := newTestServer(t)
		m.carts.On("RemoveItem", mock.Anything, 4, "svc-9").
			Return(nil, cart.ErrCartItemNotFound)

		w := doJSON(r, http.MethodDelete, "/api/cart/items/svc-9", bearerFor(t, 4, user.RoleCustomer), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ZeroQuantityRemoves", func(t *testing.T) {
		r, m := newTestServer(t)
		m.carts.On("UpdateItemQuantity", mock.Anything, 4, "svc-1", 0).
			Return(&cart.Cart{UserID: 4}, nil)

		w := doJSON(r, http.MethodPut, "/api/cart/items/svc-1", bearerFor(t, 4, user.RoleCustomer), gin.H{
			"quantity": 0,
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestOrderRoutes(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("CheckoutSuccess", func(t *testing.T) {
		r, m := newTestServer(t)
		m.orders.On("Checkout", mock.Anything, mock.MatchedBy(func(p order.CheckoutParams) bool {
			return p.UserID == 4 && len(p.Items) == 1 && p.Items[0].Quantity == 2
		})).Return(&order.Order{ID: "ord-1", OrderNumber: "LND-20260828-abc", Total: 236}, nil)

		w := doJSON(r, http.MethodPost, "/api/orders", bearerFor(t, 4, user.RoleCustomer), gin.H{
			"items":           []gin.H{{"serviceId": "svc-1", "quantity": 2}},
			"pickupAddress":   "221B Baker Street, London",
			"deliveryAddress": "221B Baker Street, London",
			"pickupDate":      "2026-09-01",
			"pickupTime":      "10:30",
		})
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "LND-20260828-abc")
	})

	t.Run("CheckoutBadPickupTime", func(t *testing.T) {
		r, _ := newTestServer(t)

		w := doJSON(r, http.MethodPost, "/api/orders", bearerFor(t, 4, user.RoleCustomer), gin.H{
			"items":           []gin.H{{"serviceId": "svc-1", "quantity": 2}},
			"pickupAddress":   "221B Baker Street, London",
			"deliveryAddress": "221B Baker Street, London",
			"pickupDate":      "2026-09-01",
			"pickupTime":      "25:99",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ListScopesCustomerToOwnOrders", func(t *testing.T) {
		r, m := newTestServer(t)
		m.orders.On("GetOrders", mock.Anything, mock.MatchedBy(func(f order.ListFilter) bool {
			return f.UserID != nil && *f.UserID == 4
		}), defaultPageLimit, 1).Return([]order.Order{}, 0, nil)

		w := doJSON(r, http.MethodGet, "/api/orders", bearerFor(t, 4, user.RoleCustomer), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		m.orders.AssertExpectations(t)
	})

	t.Run("ListAdminSeesAll", func(t *testing.T) {
		r, m := newTestServer(t)
		m.orders.On("GetOrders", mock.Anything, mock.MatchedBy(func(f order.ListFilter) bool {
			return f.UserID == nil
		}), defaultPageLimit, 1).Return([]order.Order{}, 0, nil)

		w := doJSON(r, http.MethodGet, "/api/orders", bearerFor(t, 1, user.RoleAdmin), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		m.orders.AssertExpectations(t)
	})

	t.Run("CancelPastWindow", func(t *testing.T) {
		r, m := newTestServer(t)
		m.orders.On("Cancel", mock.Anything, "ord-1", 4).
			Return(nil, order.ErrNotCancellable)

		w := doJSON(r, http.MethodDelete, "/api/orders/ord-1", bearerFor(t, 4, user.RoleCustomer), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("StatusUpdateRequiresAdmin", func(t *testing.T) {
		r, _ := newTestServer(t)

		w := doJSON(r, http.MethodPut, "/api/orders/ord-1/status", bearerFor(t, 4, user.RoleCustomer), gin.H{
			"status": "confirmed",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("DuplicateReview", func(t *testing.T) {
		r, m := newTestServer(t)
		m.orders.On("Review", mock.Anything, "ord-1", 4, 5, mock.Anything).
			Return(nil, order.ErrAlreadyReviewed)

		w := doJSON(r, http.MethodPost, "/api/orders/ord-1/review", bearerFor(t, 4, user.RoleCustomer), gin.H{
			"rating": 5,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ForeignOrderIs404", func(t *testing.T) {
		r, m := newTestServer(t)
		m.orders.On("GetOrderDetail", mock.Anything, "ord-2", 4, false).
			Return(nil, order.ErrOrderNotFound)

		w := doJSON(r, http.MethodGet, "/api/orders/ord-2", bearerFor(t, 4, user.RoleCustomer), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserAdminRoutes(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("ListRequiresAdmin", func(t *testing.T) {
		r, _ := newTestServer(t)
		w := doJSON(r, http.MethodGet, "/api/users", bearerFor(t, 4, user.RoleCustomer), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("MembershipOverride", func(t *testing.T) {
		r, m := newTestServer(t)
		m.users.On("SetMembershipTier", mock.Anything, 9, "gold").Return(nil)

		w := doJSON(r, http.MethodPut, "/api/users/9/membership", bearerFor(t, 1, user.RoleAdmin), gin.H{
			"membershipTier": "gold",
		})
		assert.Equal(t, http.StatusOK, w.Code)
		m.users.AssertExpectations(t)
	})

	t.Run("InvalidTier", func(t *testing.T) {
		r, m := newTestServer(t)
		m.users.On("SetMembershipTier", mock.Anything, 9, "diamond").Return(user.ErrInvalidTier)

		w := doJSON(r, http.MethodPut, "/api/users/9/membership", bearerFor(t, 1, user.RoleAdmin), gin.H{
			"membershipTier": "diamond",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("DeactivateAccount", func(t *testing.T) {
		r, m := newTestServer(t)
		m.users.On("SetActive", mock.Anything, 9, false).Return(nil)

		w := doJSON(r, http.MethodPut, "/api/users/9/status", bearerFor(t, 1, user.RoleAdmin), gin.H{
			"isActive": false,
		})
		assert.Equal(t, http.StatusOK, w.Code)
		m.users.AssertExpectations(t)
	})
}

func TestHealthRoute(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"up"`)
	assert.Contains(t, w.Body.String(), `"uptime"`)
}
