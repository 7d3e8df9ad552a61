//go:build integration

package repo

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Skotchmaster/online_pharmacy/internal/models"
	"github.com/Skotchmaster/online_pharmacy/pkg/db"
)

func newPostgresRepo(t *testing.T) *GormRepo {
	t.Helper()
	ctx := context.Background()

	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("shop"),
		postgres.WithUsername("shop"),
		postgres.WithPassword("shop"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	gdb, err := db.Open(ctx, db.DriverPostgres, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := New(gdb)
	require.NoError(t, r.Migrate(ctx))
	return r
}

func TestPostgres_OrderLifecycle(t *testing.T) {
	r := newPostgresRepo(t)
	ctx := context.Background()

	u := &models.User{Email: "pg@example.com", Name: "PG", PasswordHash: "x"}
	require.NoError(t, r.CreateUser(ctx, u))
	assert.ErrorIs(t, r.CreateUser(ctx, &models.User{Email: "pg@example.com", Name: "Dup", PasswordHash: "x"}), ErrDuplicate)

	p := &models.Product{Name: "Ibuprofen", Price: decimal.RequireFromString("9.99")}
	require.NoError(t, r.CreateProduct(ctx, p))

	var orderID uint
	err := r.InTx(ctx, func(tx Orders) error {
		o := &models.Order{CustomerID: u.ID, Status: models.OrderStatusConfirmed}
		if err := tx.CreateOrder(ctx, o); err != nil {
			return err
		}
		if err := tx.CreateOrderItem(ctx, &models.OrderItem{OrderID: o.ID, ProductID: p.ID, Quantity: 2}); err != nil {
			return err
		}
		orderID = o.ID
		return tx.SetOrderTotal(ctx, o.ID, decimal.RequireFromString("19.98"))
	})
	require.NoError(t, err)

	orders, err := r.ListOrdersByCustomer(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, orderID, orders[0].ID)
	assert.Equal(t, "19.98", orders[0].TotalAmount.StringFixed(2))
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Ibuprofen", orders[0].Items[0].Product.Name)
}

func TestPostgres_ItemForMissingProductFails(t *testing.T) {
	r := newPostgresRepo(t)
	ctx := context.Background()

	u := &models.User{Email: "fk@example.com", Name: "FK", PasswordHash: "x"}
	require.NoError(t, r.CreateUser(ctx, u))

	err := r.InTx(ctx, func(tx Orders) error {
		o := &models.Order{CustomerID: u.ID, Status: models.OrderStatusConfirmed}
		if err := tx.CreateOrder(ctx, o); err != nil {
			return err
		}
		return tx.CreateOrderItem(ctx, &models.OrderItem{OrderID: o.ID, ProductID: 12345, Quantity: 1})
	})
	require.Error(t, err)

	orders, err := r.ListOrdersByCustomer(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}
