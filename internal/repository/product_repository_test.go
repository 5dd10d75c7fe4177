package repository_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"storefront/internal/domain"
	"storefront/internal/port"
	"storefront/internal/repository"
)

type productRepositorySuite struct {
	suite.Suite

	repo port.ProductRepository
	pool *pgxpool.Pool
}

func TestProductRepositorySuite(t *testing.T) {
	suite.Run(t, new(productRepositorySuite))
}

func (suite *productRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.NoError(err)

	suite.repo = repository.NewProduct(suite.pool)
}

func (suite *productRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *productRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE products CASCADE")
	suite.NoError(err)
}

func (suite *productRepositorySuite) TestCreateAndGet() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	created, err := suite.repo.Create(ctx, randomProduct(7))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	got, err := suite.repo.GetByID(ctx, created.ID)
	require.NoError(t, err)

	require.Equal(t, created.Name, got.Name)
	require.Equal(t, created.Description, got.Description)
	require.Equal(t, int64(7), got.Stock)
	assertMoney(t, created.Price, got.Price)
}

func (suite *productRepositorySuite) TestGetMissing() {
	t := suite.T()

	_, err := suite.repo.GetByID(t.Context(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *productRepositorySuite) TestUpdate() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	created, err := suite.repo.Create(ctx, randomProduct(3))
	require.NoError(t, err)

	created.Name = "renamed"
	created.Stock = 11

	updated, err := suite.repo.Update(ctx, created)
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Name)
	require.Equal(t, int64(11), updated.Stock)

	_, err = suite.repo.Update(ctx, randomProduct(1))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *productRepositorySuite) TestDelete() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	created, err := suite.repo.Create(ctx, randomProduct(1))
	require.NoError(t, err)

	deleted, err := suite.repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = suite.repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, deleted)
}

func (suite *productRepositorySuite) TestDecrementStock() {
	defer suite.deleteAll()

	tests := []struct {
		name          string
		initialStock  int64
		quantity      int64
		wantStock     int64
		wantAvailable int64 // set when insufficiency expected
	}{
		{
			name:         "decrement within stock: ok",
			initialStock: 5,
			quantity:     2,
			wantStock:    3,
		},
		{
			name:         "decrement exactly to zero: ok",
			initialStock: 4,
			quantity:     4,
			wantStock:    0,
		},
		{
			name:          "decrement beyond stock: insufficient",
			initialStock:  1,
			quantity:      2,
			wantStock:     1,
			wantAvailable: 1,
		},
		{
			name:          "decrement from zero stock: insufficient",
			initialStock:  0,
			quantity:      1,
			wantStock:     0,
			wantAvailable: 0,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			product, err := suite.repo.Create(ctx, randomProduct(tt.initialStock))
			require.NoError(t, err)

			err = suite.repo.DecrementStock(ctx, product.ID, tt.quantity)

			if tt.wantAvailable > 0 || tt.initialStock < tt.quantity {
				var stockErr *domain.InsufficientStockError
				require.ErrorAs(t, err, &stockErr)
				require.Equal(t, product.ID, stockErr.ProductID)
				require.Equal(t, product.Name, stockErr.ProductName)
				require.Equal(t, tt.wantAvailable, stockErr.Available)
				require.Equal(t, tt.quantity, stockErr.Requested)
			} else {
				require.NoError(t, err)
			}

			got, err := suite.repo.GetByID(ctx, product.ID)
			require.NoError(t, err)
			require.Equal(t, tt.wantStock, got.Stock)
		})
	}
}

func (suite *productRepositorySuite) TestDecrementStockMissingProduct() {
	t := suite.T()

	err := suite.repo.DecrementStock(t.Context(), uuid.New(), 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// Many concurrent decrements must never drive stock negative: exactly
// stock/quantity of them can win.
func (suite *productRepositorySuite) TestDecrementStockConcurrent() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	const (
		initialStock = 10
		workers      = 25
	)

	product, err := suite.repo.Create(ctx, randomProduct(initialStock))
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := suite.repo.DecrementStock(ctx, product.ID, 1)
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}

			var stockErr *domain.InsufficientStockError
			if !errors.As(err, &stockErr) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, initialStock, succeeded)

	got, err := suite.repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), got.Stock)
}

func (suite *productRepositorySuite) TestIncrementStock() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	product, err := suite.repo.Create(ctx, randomProduct(2))
	require.NoError(t, err)

	require.NoError(t, suite.repo.IncrementStock(ctx, product.ID, 3))

	got, err := suite.repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, int64(5), got.Stock)

	err = suite.repo.IncrementStock(ctx, uuid.New(), 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
