package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"storefront/internal/domain"
	"storefront/internal/port"
	"storefront/internal/repository"
	"storefront/internal/service"
)

type cartServiceSuite struct {
	suite.Suite

	pool     *pgxpool.Pool
	carts    *service.CartService
	products port.ProductRepository
}

func TestCartServiceSuite(t *testing.T) {
	suite.Run(t, new(cartServiceSuite))
}

func (suite *cartServiceSuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.NoError(err)

	suite.products = repository.NewProduct(suite.pool)
	suite.carts = service.NewCart(repository.NewCart(suite.pool), suite.products)
}

func (suite *cartServiceSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *cartServiceSuite) TestAddItem() {
	t := suite.T()
	ctx := t.Context()

	product, err := suite.products.Create(ctx, productFixture("tea", 7, 100))
	require.NoError(t, err)

	ownerID := uuid.New()

	cart, err := suite.carts.AddItem(ctx, ownerID, product.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2), cart.Items[0].Quantity)
	assertAmount(t, 7, cart.Items[0].UnitPrice.Amount)

	// adding the same product again merges quantities
	cart, err = suite.carts.AddItem(ctx, ownerID, product.ID, 3)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(5), cart.Items[0].Quantity)
}

func (suite *cartServiceSuite) TestAddItemUnknownProduct() {
	t := suite.T()

	_, err := suite.carts.AddItem(t.Context(), uuid.New(), uuid.New(), 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *cartServiceSuite) TestAddItemInvalidQuantity() {
	t := suite.T()

	_, err := suite.carts.AddItem(t.Context(), uuid.New(), uuid.New(), 0)
	require.ErrorIs(t, err, service.ErrInvalidInput)
}

func (suite *cartServiceSuite) TestUpdateItem() {
	t := suite.T()
	ctx := t.Context()

	product, err := suite.products.Create(ctx, productFixture("coffee", 12, 100))
	require.NoError(t, err)

	ownerID := uuid.New()

	_, err = suite.carts.AddItem(ctx, ownerID, product.ID, 1)
	require.NoError(t, err)

	cart, err := suite.carts.UpdateItem(ctx, ownerID, product.ID, 4)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(4), cart.Items[0].Quantity)

	// updating an absent line is a not-found, not an upsert
	_, err = suite.carts.UpdateItem(ctx, ownerID, uuid.New(), 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *cartServiceSuite) TestRemoveItem() {
	t := suite.T()
	ctx := t.Context()

	product, err := suite.products.Create(ctx, productFixture("sugar", 3, 100))
	require.NoError(t, err)

	ownerID := uuid.New()

	_, err = suite.carts.AddItem(ctx, ownerID, product.ID, 1)
	require.NoError(t, err)

	cart, err := suite.carts.RemoveItem(ctx, ownerID, product.ID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	_, err = suite.carts.RemoveItem(ctx, ownerID, product.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
