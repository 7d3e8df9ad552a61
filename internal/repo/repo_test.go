package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/online_pharmacy/internal/models"
	"github.com/Skotchmaster/online_pharmacy/pkg/db"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	ctx := context.Background()

	gdb, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := New(gdb)
	require.NoError(t, r.Migrate(ctx))
	return r
}

func mustProduct(t *testing.T, r *GormRepo, name, price string) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: decimal.RequireFromString(price), Category: "misc"}
	require.NoError(t, r.CreateProduct(context.Background(), p))
	return p
}

func mustUser(t *testing.T, r *GormRepo, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Name: "Test", PasswordHash: "x"}
	require.NoError(t, r.CreateUser(context.Background(), u))
	return u
}

func TestUsers_CreateAndLookup(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	u := mustUser(t, r, "a@example.com")
	assert.NotZero(t, u.ID)
	assert.Equal(t, "user", u.Role)

	exists, err := r.EmailExists(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = r.EmailExists(ctx, "b@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	got, err := r.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	byID, err := r.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", byID.Email)

	_, err = r.GetUserByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	r := newTestRepo(t)
	mustUser(t, r, "dup@example.com")

	err := r.CreateUser(context.Background(), &models.User{Email: "dup@example.com", Name: "Other", PasswordHash: "y"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestProducts_ListOrderedByID(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	items, err := r.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)

	mustProduct(t, r, "Aspirin", "4.50")
	mustProduct(t, r, "Bandage", "1.25")

	items, err = r.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Aspirin", items[0].Name)
	assert.True(t, decimal.RequireFromString("4.50").Equal(items[0].Price))
	assert.Equal(t, "Bandage", items[1].Name)
}

func TestProducts_GetMissing(t *testing.T) {
	r := newTestRepo(t)
	_, err := r.GetProduct(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProducts_UpsertByName(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	p := &models.Product{Name: "Vitamin C", Price: decimal.RequireFromString("7.00")}
	created, err := r.UpsertProductByName(ctx, p)
	require.NoError(t, err)
	assert.True(t, created)

	again := &models.Product{Name: "Vitamin C", Price: decimal.RequireFromString("9.00")}
	created, err = r.UpsertProductByName(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, p.ID, again.ID)

	items, err := r.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestOrders_InTxRollsBack(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := mustUser(t, r, "tx@example.com")

	boom := errors.New("boom")
	err := r.InTx(ctx, func(tx Orders) error {
		o := &models.Order{CustomerID: u.ID, Status: models.OrderStatusConfirmed}
		require.NoError(t, tx.CreateOrder(ctx, o))
		return boom
	})
	require.ErrorIs(t, err, boom)

	orders, err := r.ListOrdersByCustomer(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrders_ListNewestFirstWithItems(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := mustUser(t, r, "hist@example.com")
	other := mustUser(t, r, "other@example.com")
	p := mustProduct(t, r, "Syrup", "3.10")

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, owner := range []uint{u.ID, u.ID, other.ID} {
		o := &models.Order{CustomerID: owner, Status: models.OrderStatusConfirmed, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, r.CreateOrder(ctx, o))
		require.NoError(t, r.CreateOrderItem(ctx, &models.OrderItem{OrderID: o.ID, ProductID: p.ID, Quantity: uint(i + 1)}))
		require.NoError(t, r.SetOrderTotal(ctx, o.ID, p.Price.Mul(decimal.NewFromInt(int64(i+1)))))
	}

	orders, err := r.ListOrdersByCustomer(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.True(t, orders[0].CreatedAt.After(orders[1].CreatedAt))
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Syrup", orders[0].Items[0].Product.Name)
	assert.Equal(t, uint(2), orders[0].Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("6.20").Equal(orders[0].TotalAmount))
}

func TestOrders_SetTotalMissingOrder(t *testing.T) {
	r := newTestRepo(t)
	err := r.SetOrderTotal(context.Background(), 999, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrNotFound)
}
