package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"

	"storefront/internal/auth"
	"storefront/internal/domain"
	"storefront/internal/httpapi"
	"storefront/internal/port"
	"storefront/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Stubs implement the service ports with overridable behavior. A nil
// function means "succeed with zero values".

type stubUserService struct {
	registerFn func(ctx context.Context, name, email, password string) (domain.User, string, error)
	loginFn    func(ctx context.Context, email, password string) (string, error)
	profileFn  func(ctx context.Context, userID uuid.UUID) (domain.User, error)
}

func (s *stubUserService) Register(ctx context.Context, name, email, password string) (domain.User, string, error) {
	if s.registerFn != nil {
		return s.registerFn(ctx, name, email, password)
	}
	return domain.User{}, "", nil
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (string, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, email, password)
	}
	return "", nil
}

func (s *stubUserService) Profile(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	if s.profileFn != nil {
		return s.profileFn(ctx, userID)
	}
	return domain.User{}, nil
}

type stubCategoryService struct{}

func (s *stubCategoryService) Create(ctx context.Context, name string) (domain.Category, error) {
	return domain.Category{Name: name}, nil
}

func (s *stubCategoryService) Get(ctx context.Context, id uuid.UUID) (domain.Category, error) {
	return domain.Category{ID: id}, nil
}

func (s *stubCategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return nil, nil
}

func (s *stubCategoryService) Update(ctx context.Context, id uuid.UUID, name string) (domain.Category, error) {
	return domain.Category{ID: id, Name: name}, nil
}

func (s *stubCategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubProductService struct {
	getFn func(ctx context.Context, id uuid.UUID) (domain.Product, error)
}

func (s *stubProductService) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	return product, nil
}

func (s *stubProductService) Get(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return domain.Product{ID: id}, nil
}

func (s *stubProductService) List(ctx context.Context, filter port.ProductFilter) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubProductService) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	return product, nil
}

func (s *stubProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubCartService struct {
	addFn func(ctx context.Context, ownerID, productID uuid.UUID, quantity int64) (domain.Cart, error)
}

func (s *stubCartService) GetCart(ctx context.Context, ownerID uuid.UUID) (domain.Cart, error) {
	return domain.Cart{OwnerID: ownerID}, nil
}

func (s *stubCartService) AddItem(ctx context.Context, ownerID, productID uuid.UUID, quantity int64) (domain.Cart, error) {
	if s.addFn != nil {
		return s.addFn(ctx, ownerID, productID, quantity)
	}
	return domain.Cart{OwnerID: ownerID}, nil
}

func (s *stubCartService) UpdateItem(ctx context.Context, ownerID, productID uuid.UUID, quantity int64) (domain.Cart, error) {
	return domain.Cart{OwnerID: ownerID}, nil
}

func (s *stubCartService) RemoveItem(ctx context.Context, ownerID, productID uuid.UUID) (domain.Cart, error) {
	return domain.Cart{OwnerID: ownerID}, nil
}

type stubOrderService struct {
	placeFn        func(ctx context.Context, ownerID uuid.UUID, shippingAddress string) (domain.Order, error)
	getFn          func(ctx context.Context, requesterID uuid.UUID, role domain.Role, orderID uuid.UUID) (domain.Order, error)
	updateStatusFn func(ctx context.Context, orderID uuid.UUID, status string) (domain.Order, error)
	cancelFn       func(ctx context.Context, requesterID uuid.UUID, role domain.Role, orderID uuid.UUID) (domain.Order, error)
}

func (s *stubOrderService) PlaceOrder(ctx context.Context, ownerID uuid.UUID, shippingAddress string) (domain.Order, error) {
	if s.placeFn != nil {
		return s.placeFn(ctx, ownerID, shippingAddress)
	}
	return domain.Order{OwnerID: ownerID}, nil
}

func (s *stubOrderService) GetOrder(ctx context.Context, requesterID uuid.UUID, role domain.Role, orderID uuid.UUID) (domain.Order, error) {
	if s.getFn != nil {
		return s.getFn(ctx, requesterID, role, orderID)
	}
	return domain.Order{ID: orderID}, nil
}

func (s *stubOrderService) ListOrders(ctx context.Context, ownerID uuid.UUID) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderService) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (domain.Order, error) {
	if s.updateStatusFn != nil {
		return s.updateStatusFn(ctx, orderID, status)
	}
	return domain.Order{ID: orderID}, nil
}

func (s *stubOrderService) CancelOrder(ctx context.Context, requesterID uuid.UUID, role domain.Role, orderID uuid.UUID) (domain.Order, error) {
	if s.cancelFn != nil {
		return s.cancelFn(ctx, requesterID, role, orderID)
	}
	return domain.Order{ID: orderID}, nil
}

type testEnv struct {
	server *httpapi.Server
	issuer *auth.Issuer

	users    *stubUserService
	products *stubProductService
	carts    *stubCartService
	orders   *stubOrderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	issuer, err := auth.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	env := &testEnv{
		issuer:   issuer,
		users:    &stubUserService{},
		products: &stubProductService{},
		carts:    &stubCartService{},
		orders:   &stubOrderService{},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env.server = httpapi.NewServer(logger, issuer, env.users, &stubCategoryService{}, env.products, env.carts, env.orders)

	return env
}

func (env *testEnv) tokenFor(t *testing.T, role domain.Role) (uuid.UUID, string) {
	t.Helper()

	userID := uuid.New()
	token, err := env.issuer.Issue(auth.Identity{UserID: userID, Role: role})
	require.NoError(t, err)

	return userID, token
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.server.Engine().ServeHTTP(rec, req)

	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body["error"]
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/users/me"},
		{http.MethodGet, "/api/cart"},
		{http.MethodPost, "/api/orders"},
		{http.MethodGet, "/api/orders/my-orders"},
	}

	for _, route := range protected {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rec := env.do(t, route.method, route.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	t.Run("malformed token", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/cart", "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "token is not valid", errorMessage(t, rec))
	})
}

func TestAdminRequired(t *testing.T) {
	env := newTestEnv(t)

	_, userToken := env.tokenFor(t, domain.RoleUser)
	_, adminToken := env.tokenFor(t, domain.RoleAdmin)

	t.Run("user cannot list all orders", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/orders", userToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("user cannot update order status", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/orders/"+uuid.NewString(), userToken,
			gin.H{"status": "shipped"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("user cannot create products", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/products", userToken, gin.H{})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin can list all orders", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/orders", adminToken, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	t.Run("created", func(t *testing.T) {
		userID := uuid.New()
		env.users.registerFn = func(ctx context.Context, name, email, password string) (domain.User, string, error) {
			return domain.User{ID: userID, Name: name, Email: email, Role: domain.RoleUser}, "issued-token", nil
		}

		rec := env.do(t, http.MethodPost, "/api/users/register", "",
			gin.H{"name": "Alice", "email": "alice@example.com", "password": "pw"})
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Token string      `json:"token"`
			User  domain.User `json:"user"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "issued-token", resp.Token)
		assert.Equal(t, userID, resp.User.ID)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/users/register", "",
			gin.H{"name": "Alice"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		env.users.registerFn = func(ctx context.Context, name, email, password string) (domain.User, string, error) {
			return domain.User{}, "", domain.ErrEmailTaken
		}

		rec := env.do(t, http.MethodPost, "/api/users/register", "",
			gin.H{"name": "Alice", "email": "alice@example.com", "password": "pw"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "user already exists", errorMessage(t, rec))
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	env.users.loginFn = func(ctx context.Context, email, password string) (string, error) {
		return "", domain.ErrInvalidCredentials
	}

	rec := env.do(t, http.MethodPost, "/api/users/login", "",
		gin.H{"email": "alice@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", errorMessage(t, rec))
}

func TestPlaceOrder(t *testing.T) {
	env := newTestEnv(t)

	ownerID, token := env.tokenFor(t, domain.RoleUser)

	t.Run("created", func(t *testing.T) {
		orderID := uuid.New()
		env.orders.placeFn = func(ctx context.Context, gotOwner uuid.UUID, shippingAddress string) (domain.Order, error) {
			assert.Equal(t, ownerID, gotOwner)
			assert.Equal(t, "1 Main St", shippingAddress)

			return domain.Order{
				ID:              orderID,
				OwnerID:         gotOwner,
				ShippingAddress: shippingAddress,
				Status:          domain.OrderStatusPending,
				Total:           domain.Money{Amount: decimal.NewFromInt(40), Currency: currency.USD},
			}, nil
		}

		rec := env.do(t, http.MethodPost, "/api/orders", token,
			gin.H{"shipping_address": "1 Main St"})
		require.Equal(t, http.StatusCreated, rec.Code)

		var order domain.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
		assert.Equal(t, orderID, order.ID)
		assert.Equal(t, domain.OrderStatusPending, order.Status)
	})

	t.Run("missing shipping address", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/orders", token, gin.H{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty cart", func(t *testing.T) {
		env.orders.placeFn = func(ctx context.Context, ownerID uuid.UUID, shippingAddress string) (domain.Order, error) {
			return domain.Order{}, domain.ErrEmptyCart
		}

		rec := env.do(t, http.MethodPost, "/api/orders", token,
			gin.H{"shipping_address": "1 Main St"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "cart is empty", errorMessage(t, rec))
	})

	t.Run("insufficient stock", func(t *testing.T) {
		env.orders.placeFn = func(ctx context.Context, ownerID uuid.UUID, shippingAddress string) (domain.Order, error) {
			return domain.Order{}, &domain.InsufficientStockError{
				ProductName: "honey", Available: 1, Requested: 3,
			}
		}

		rec := env.do(t, http.MethodPost, "/api/orders", token,
			gin.H{"shipping_address": "1 Main St"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, errorMessage(t, rec), "insufficient stock for product honey")
	})
}

func TestGetOrder(t *testing.T) {
	env := newTestEnv(t)

	_, token := env.tokenFor(t, domain.RoleUser)

	t.Run("invalid id", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/orders/not-a-uuid", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("forbidden", func(t *testing.T) {
		env.orders.getFn = func(ctx context.Context, requesterID uuid.UUID, role domain.Role, orderID uuid.UUID) (domain.Order, error) {
			return domain.Order{}, domain.ErrForbidden
		}

		rec := env.do(t, http.MethodGet, "/api/orders/"+uuid.NewString(), token, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		env.orders.getFn = func(ctx context.Context, requesterID uuid.UUID, role domain.Role, orderID uuid.UUID) (domain.Order, error) {
			return domain.Order{}, domain.ErrNotFound
		}

		rec := env.do(t, http.MethodGet, "/api/orders/"+uuid.NewString(), token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	env := newTestEnv(t)

	_, adminToken := env.tokenFor(t, domain.RoleAdmin)

	env.orders.updateStatusFn = func(ctx context.Context, orderID uuid.UUID, status string) (domain.Order, error) {
		parsed, err := domain.ParseOrderStatus(status)
		if err != nil {
			return domain.Order{}, err
		}
		return domain.Order{ID: orderID, Status: parsed}, nil
	}

	t.Run("ok", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/orders/"+uuid.NewString(), adminToken,
			gin.H{"status": "shipped"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/orders/"+uuid.NewString(), adminToken,
			gin.H{"status": "in-transit"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, errorMessage(t, rec), "pending, shipped, delivered, cancelled")
	})
}

func TestCancelOrder(t *testing.T) {
	env := newTestEnv(t)

	_, token := env.tokenFor(t, domain.RoleUser)

	env.orders.cancelFn = func(ctx context.Context, requesterID uuid.UUID, role domain.Role, orderID uuid.UUID) (domain.Order, error) {
		return domain.Order{}, service.ErrInvalidState
	}

	rec := env.do(t, http.MethodPost, "/api/orders/"+uuid.NewString()+"/cancel", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAddToCart(t *testing.T) {
	env := newTestEnv(t)

	_, token := env.tokenFor(t, domain.RoleUser)

	t.Run("invalid product id", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/cart", token,
			gin.H{"product_id": "not-a-uuid", "quantity": 1})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		env.carts.addFn = func(ctx context.Context, ownerID, productID uuid.UUID, quantity int64) (domain.Cart, error) {
			return domain.Cart{}, domain.ErrNotFound
		}

		rec := env.do(t, http.MethodPost, "/api/cart", token,
			gin.H{"product_id": uuid.NewString(), "quantity": 1})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestInternalErrorsAreOpaque(t *testing.T) {
	env := newTestEnv(t)

	_, token := env.tokenFor(t, domain.RoleUser)

	env.orders.placeFn = func(ctx context.Context, ownerID uuid.UUID, shippingAddress string) (domain.Order, error) {
		return domain.Order{}, context.DeadlineExceeded
	}

	rec := env.do(t, http.MethodPost, "/api/orders", token,
		gin.H{"shipping_address": "1 Main St"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", errorMessage(t, rec))
}
