//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/storefront-server/internal/model"
	repo "github.com/dtroode/storefront-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "storefront_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/storefront_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newUser(email string) model.User {
	return model.User{
		ID:           uuid.New(),
		Name:         "Test",
		Email:        email,
		PasswordHash: []byte("hash"),
		Salt:         []byte("salt"),
		Role:         model.RoleCustomer,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	users := repo.NewUserRepository(conn)
	categories := repo.NewCategoryRepository(conn)
	products := repo.NewProductRepository(conn)
	orders := repo.NewOrderRepository(conn)
	checkout := repo.NewCheckoutRepository(conn)

	buyer, err := users.Create(ctx, newUser("buyer@example.com"))
	require.NoError(t, err)
	seller, err := users.Create(ctx, newUser("seller@example.com"))
	require.NoError(t, err)

	t.Run("user_repository", func(t *testing.T) {
		_, err := users.Create(ctx, newUser("buyer@example.com"))
		require.ErrorIs(t, err, model.ErrConflict)

		byEmail, err := users.GetByEmail(ctx, "buyer@example.com")
		require.NoError(t, err)
		require.Equal(t, buyer.ID, byEmail.ID)
		require.Empty(t, byEmail.Purchases)

		byEmail.LastName = "Buyer"
		updated, err := users.Update(ctx, byEmail)
		require.NoError(t, err)
		require.Equal(t, "Buyer", updated.LastName)

		_, err = users.GetByID(ctx, uuid.New())
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	category, err := categories.Create(ctx, model.Category{ID: uuid.New(), Name: "Lamps", CreatedAt: time.Now()})
	require.NoError(t, err)

	product, err := products.Create(ctx, model.Product{
		ID:          uuid.New(),
		OwnerID:     seller.ID,
		CategoryID:  category.ID,
		Name:        "Desk lamp",
		Description: "LED",
		Price:       1999,
		Stock:       3,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	})
	require.NoError(t, err)

	t.Run("product_repository", func(t *testing.T) {
		unverified, err := products.ListUnverified(ctx)
		require.NoError(t, err)
		require.Len(t, unverified, 1)

		require.NoError(t, products.SetVerified(ctx, product.ID, true))

		verified, err := products.ListVerified(ctx)
		require.NoError(t, err)
		require.Len(t, verified, 1)

		byOwner, err := products.ListByOwner(ctx, seller.ID)
		require.NoError(t, err)
		require.Len(t, byOwner, 1)
	})

	t.Run("checkout_and_orders", func(t *testing.T) {
		order := model.Order{
			ID:            uuid.New(),
			UserID:        buyer.ID,
			Products:      []model.OrderItem{{ProductID: product.ID, Name: product.Name, Price: product.Price, Quantity: 2}},
			TransactionID: "tx-1",
			Amount:        2 * product.Price,
			Status:        "Not processed",
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}
		purchases := []model.Purchase{{
			ProductID:     product.ID,
			Name:          product.Name,
			CategoryID:    category.ID,
			Quantity:      2,
			Amount:        order.Amount,
			TransactionID: "tx-1",
		}}

		placed, err := checkout.PlaceOrder(ctx, order, purchases)
		require.NoError(t, err)
		require.Equal(t, order.ID, placed.ID)

		stocked, err := products.GetByID(ctx, product.ID)
		require.NoError(t, err)
		require.Equal(t, 1, stocked.Stock)
		require.Equal(t, 2, stocked.Sold)

		withPurchases, err := users.GetByID(ctx, buyer.ID)
		require.NoError(t, err)
		require.Len(t, withPurchases.Purchases, 1)

		order.ID = uuid.New()
		_, err = checkout.PlaceOrder(ctx, order, purchases)
		require.ErrorIs(t, err, model.ErrConflict)

		unchanged, err := users.GetByID(ctx, buyer.ID)
		require.NoError(t, err)
		require.Len(t, unchanged.Purchases, 1)

		require.NoError(t, orders.UpdateStatus(ctx, placed.ID, "Not processed", "Shipped"))
		require.ErrorIs(t, orders.UpdateStatus(ctx, placed.ID, "Not processed", "Delivered"), model.ErrNotFound)

		got, err := orders.GetByID(ctx, placed.ID)
		require.NoError(t, err)
		require.Equal(t, model.OrderStatus("Shipped"), got.Status)

		byUser, err := orders.ListByUser(ctx, buyer.ID)
		require.NoError(t, err)
		require.Len(t, byUser, 1)
	})

	t.Run("push_purchases_keeps_duplicates", func(t *testing.T) {
		before, err := users.GetByID(ctx, buyer.ID)
		require.NoError(t, err)

		purchase := []model.Purchase{{
			ProductID:     product.ID,
			Name:          product.Name,
			CategoryID:    category.ID,
			Quantity:      1,
			Amount:        product.Price,
			TransactionID: "tx-dup",
		}}
		require.NoError(t, users.PushPurchases(ctx, buyer.ID, purchase))
		require.NoError(t, users.PushPurchases(ctx, buyer.ID, purchase))

		after, err := users.GetByID(ctx, buyer.ID)
		require.NoError(t, err)
		require.Len(t, after.Purchases, len(before.Purchases)+2)

		added := after.Purchases[len(before.Purchases):]
		require.Equal(t, added[0], added[1])
		require.Equal(t, "tx-dup", added[0].TransactionID)
		require.Equal(t, product.ID, added[0].ProductID)

		require.ErrorIs(t, users.PushPurchases(ctx, uuid.New(), purchase), model.ErrNotFound)
	})
}
