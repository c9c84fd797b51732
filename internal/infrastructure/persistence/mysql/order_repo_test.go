package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/order"
)

func TestOrderRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	c := seedCustomer(t, db, "alice@example.com")
	o := seedOrder(t, db, c.ID)
	require.NotZero(t, o.ID)

	got, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.OrderNo, got.OrderNo)
	assert.Equal(t, order.OrderStatusPending, got.Status)
	assert.Zero(t, got.TotalCents)
	assert.Empty(t, got.Items)

	byNo, err := repo.FindByOrderNo(ctx, o.OrderNo)
	require.NoError(t, err)
	assert.Equal(t, o.ID, byNo.ID)

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestOrderRepository_AddItemAndIncrTotal(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	c := seedCustomer(t, db, "alice@example.com")
	b := seedBook(t, db, "9780747532743", "Harry Potter and the Philosopher's Stone", 2000, 10)
	o := seedOrder(t, db, c.ID)

	item := &order.OrderItem{
		OrderID:        o.ID,
		BookID:         b.ID,
		Quantity:       3,
		UnitPriceCents: b.PriceCents,
		DiscountPct:    10,
	}
	require.NoError(t, repo.AddItem(ctx, item))
	require.NotZero(t, item.ID)
	require.NoError(t, repo.IncrTotal(ctx, o.ID, item.LineTotalCents()))

	got, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.EqualValues(t, 5400, got.TotalCents)
	assert.EqualValues(t, 2000, got.Items[0].UnitPriceCents)
}

func TestOrderRepository_UpdateStatusAndTracking(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	c := seedCustomer(t, db, "alice@example.com")
	o := seedOrder(t, db, c.ID)

	o.Status = order.OrderStatusProcessing
	require.NoError(t, repo.Update(ctx, o))
	o.Status = order.OrderStatusShipped
	o.TrackingNumber = "SF123456789"
	require.NoError(t, repo.Update(ctx, o))

	got, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderStatusShipped, got.Status)
	assert.Equal(t, "SF123456789", got.TrackingNumber)
}

func TestOrderRepository_ListByCustomerID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	alice := seedCustomer(t, db, "alice@example.com")
	bob := seedCustomer(t, db, "bob@example.com")
	for i := 0; i < 3; i++ {
		seedOrder(t, db, alice.ID)
	}
	seedOrder(t, db, bob.ID)

	orders, total, err := repo.ListByCustomerID(ctx, alice.ID, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, orders, 2)

	orders, total, err = repo.ListByCustomerID(ctx, alice.ID, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, orders, 1)
}

func TestOrderRepository_CountActiveItemsByBook(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	c := seedCustomer(t, db, "alice@example.com")
	b := seedBook(t, db, "9780747532743", "Harry Potter and the Philosopher's Stone", 2000, 10)

	active := seedOrder(t, db, c.ID)
	require.NoError(t, repo.AddItem(ctx, &order.OrderItem{OrderID: active.ID, BookID: b.ID, Quantity: 1, UnitPriceCents: 2000}))

	delivered := seedOrder(t, db, c.ID)
	require.NoError(t, repo.AddItem(ctx, &order.OrderItem{OrderID: delivered.ID, BookID: b.ID, Quantity: 1, UnitPriceCents: 2000}))
	delivered.Status = order.OrderStatusDelivered
	require.NoError(t, repo.Update(ctx, delivered))

	cancelled := seedOrder(t, db, c.ID)
	require.NoError(t, repo.AddItem(ctx, &order.OrderItem{OrderID: cancelled.ID, BookID: b.ID, Quantity: 1, UnitPriceCents: 2000}))
	cancelled.Status = order.OrderStatusCancelled
	require.NoError(t, repo.Update(ctx, cancelled))

	// 只统计在途订单(Pending/Processing/Shipped)的引用
	count, err := repo.CountActiveItemsByBook(ctx, b.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestOrderRepository_DeleteByCustomerID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	alice := seedCustomer(t, db, "alice@example.com")
	bob := seedCustomer(t, db, "bob@example.com")
	b := seedBook(t, db, "9780747532743", "Harry Potter and the Philosopher's Stone", 2000, 10)

	o1 := seedOrder(t, db, alice.ID)
	require.NoError(t, repo.AddItem(ctx, &order.OrderItem{OrderID: o1.ID, BookID: b.ID, Quantity: 1, UnitPriceCents: 2000}))
	o2 := seedOrder(t, db, bob.ID)
	require.NoError(t, repo.AddItem(ctx, &order.OrderItem{OrderID: o2.ID, BookID: b.ID, Quantity: 2, UnitPriceCents: 2000}))

	require.NoError(t, repo.DeleteByCustomerID(ctx, alice.ID))

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&OrderModel{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&OrderItemModel{}).Count(&itemCount).Error)
	assert.EqualValues(t, 1, orderCount)
	assert.EqualValues(t, 1, itemCount)

	_, err := repo.FindByID(ctx, o2.ID)
	assert.NoError(t, err)
}
