package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/storefront-server/internal/api/http/context"
	"github.com/dtroode/storefront-server/internal/mocks"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServices struct {
	auth     *mocks.AuthService
	user     *mocks.UserService
	product  *mocks.ProductService
	order    *mocks.OrderService
	category *mocks.CategoryService
	token    *mocks.TokenService
	database *mocks.Pinger
}

func newTestRouter(t *testing.T, opts Options) (*gin.Engine, testServices) {
	t.Helper()

	s := testServices{
		auth:     mocks.NewAuthService(t),
		user:     mocks.NewUserService(t),
		product:  mocks.NewProductService(t),
		order:    mocks.NewOrderService(t),
		category: mocks.NewCategoryService(t),
		token:    mocks.NewTokenService(t),
		database: mocks.NewPinger(t),
	}

	r := New(Services{
		Auth:     s.auth,
		User:     s.user,
		Product:  s.product,
		Order:    s.order,
		Category: s.category,
		Token:    s.token,
		Database: s.database,
	}, opts, httpctx.NewManager(), testutil.MakeNoopLogger())

	return r.Register(), s
}

func do(engine *gin.Engine, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRouter_PublicRoutes(t *testing.T) {
	engine, s := newTestRouter(t, Options{})
	s.product.On("ListVerified", mock.Anything).Return([]model.Product{{ID: uuid.New(), Name: "Lamp"}}, nil)
	s.category.On("List", mock.Anything).Return([]model.Category{}, nil)

	w := do(engine, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Lamp")

	w = do(engine, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRouter_Health(t *testing.T) {
	engine, s := newTestRouter(t, Options{})
	s.database.On("Ping", mock.Anything).Return(nil).Once()

	w := do(engine, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_UnknownRoute(t *testing.T) {
	engine, _ := newTestRouter(t, Options{})

	w := do(engine, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_OwnerGroup(t *testing.T) {
	owner := model.User{ID: uuid.New(), Name: "Ada"}
	other := model.User{ID: uuid.New(), Name: "Bob"}

	tests := []struct {
		name     string
		target   string
		token    string
		setup    func(s testServices)
		wantCode int
	}{
		{
			name:     "no token",
			target:   "/api/user/" + owner.ID.String(),
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "own profile",
			target: "/api/user/" + owner.ID.String(),
			token:  "owner-token",
			setup: func(s testServices) {
				s.token.On("Verify", mock.Anything, "owner-token").Return(owner.ID, nil)
				s.user.On("Get", mock.Anything, owner.ID).Return(owner, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "someone else's profile",
			target: "/api/user/" + other.ID.String(),
			token:  "owner-token",
			setup: func(s testServices) {
				s.token.On("Verify", mock.Anything, "owner-token").Return(owner.ID, nil)
				s.user.On("Get", mock.Anything, other.ID).Return(other, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "malformed user id",
			target: "/api/user/abc/orders",
			token:  "owner-token",
			setup: func(s testServices) {
				s.token.On("Verify", mock.Anything, "owner-token").Return(owner.ID, nil)
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, s := newTestRouter(t, Options{})
			if tt.setup != nil {
				tt.setup(s)
			}

			w := do(engine, http.MethodGet, tt.target, tt.token)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestRouter_AdminGroup(t *testing.T) {
	customer := model.User{ID: uuid.New(), Role: model.RoleCustomer}
	admin := model.User{ID: uuid.New(), Role: model.RoleAdmin}

	t.Run("customer is rejected", func(t *testing.T) {
		engine, s := newTestRouter(t, Options{})
		s.token.On("Verify", mock.Anything, "tok").Return(customer.ID, nil)
		s.user.On("Get", mock.Anything, customer.ID).Return(customer, nil)

		w := do(engine, http.MethodGet, "/api/admin/"+customer.ID.String()+"/orders", "tok")

		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "You are not ADMIN, Access denied")
	})

	t.Run("admin lists statuses", func(t *testing.T) {
		engine, s := newTestRouter(t, Options{})
		s.token.On("Verify", mock.Anything, "tok").Return(admin.ID, nil)
		s.user.On("Get", mock.Anything, admin.ID).Return(admin, nil)
		s.order.On("AllowedStatuses").Return([]model.OrderStatus{"Not processed"})

		w := do(engine, http.MethodGet, "/api/admin/"+admin.ID.String()+"/order/status", "tok")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `["Not processed"]`, w.Body.String())
	})
}

func TestRouter_CORS(t *testing.T) {
	t.Run("wildcard", func(t *testing.T) {
		engine, _ := newTestRouter(t, Options{})

		req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
		req.Header.Set("Origin", "http://shop.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("listed origin only", func(t *testing.T) {
		engine, _ := newTestRouter(t, Options{CORSOrigins: []string{"https://shop.example.com"}})

		req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRouter_RateLimit(t *testing.T) {
	engine, s := newTestRouter(t, Options{RateLimitRPS: 0.001, RateLimitBurst: 1})
	s.category.On("List", mock.Anything).Return([]model.Category{}, nil).Once()

	first := do(engine, http.MethodGet, "/api/categories", "")
	second := do(engine, http.MethodGet, "/api/categories", "")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.True(t, strings.Contains(second.Body.String(), "too many requests"))
}
