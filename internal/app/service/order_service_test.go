package service

import (
	"testing"
	"time"

	"github.com/shopzone-io/shopzone-backend/internal/app/model"
	"github.com/shopzone-io/shopzone-backend/internal/app/repository"
	"github.com/shopzone-io/shopzone-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (OrderService, *gorm.DB, []model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	orderService := NewOrderService(orderRepo, productRepo)

	products := []model.Product{
		{Name: "Espresso Machine", Slug: "espresso-machine", Price: 18999},
		{Name: "Coffee Grinder", Slug: "coffee-grinder", Price: 5999},
	}
	for i := range products {
		require.NoError(t, testDB.Create(&products[i]).Error)
	}

	return orderService, testDB, products
}

func TestOrderService_PlaceOrder(t *testing.T) {
	orderService, _, products := setupOrderServiceTest(t)

	placed, err := orderService.PlaceOrder(1, OrderInput{
		ShippingAddress: "221B Baker Street, London",
		PaymentMethod:   "card",
		TotalAmount:     24998,
	}, []OrderItemInput{
		{ProductID: products[0].ID, Price: 18999, Quantity: 1},
		{ProductID: products[1].ID, Price: 5999, Quantity: 1},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, placed.OrderID)
	assert.Equal(t, float64(24998), placed.TotalAmount)
	assert.Equal(t, "card", placed.PaymentMethod)
	assert.Equal(t, time.Now().Format("02 January 2006"), placed.CreatedAt)
	require.Len(t, placed.OrderItems, 2)

	byProduct := make(map[uint]PlacedOrderItem)
	for _, item := range placed.OrderItems {
		byProduct[item.ProductID] = item
	}
	assert.Equal(t, "Espresso Machine", byProduct[products[0].ID].ProductName)
	assert.Equal(t, "espresso-machine", byProduct[products[0].ID].ProductSlug)
	assert.Equal(t, float64(18999), byProduct[products[0].ID].Price)
}

func TestOrderService_PlaceOrder_DropsInvalidItems(t *testing.T) {
	orderService, testDB, products := setupOrderServiceTest(t)

	placed, err := orderService.PlaceOrder(1, OrderInput{
		ShippingAddress: "somewhere",
		PaymentMethod:   "cod",
		TotalAmount:     5999,
	}, []OrderItemInput{
		{ProductID: products[1].ID, Price: 5999, Quantity: 1},
		{ProductID: 9999, Price: 100, Quantity: 1}, // unknown: dropped
		{ProductID: 0, Price: 100, Quantity: 1},    // missing id: dropped
	})
	require.NoError(t, err)
	require.Len(t, placed.OrderItems, 1)
	assert.Equal(t, products[1].ID, placed.OrderItems[0].ProductID)

	var count int64
	testDB.Model(&model.OrderItem{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestOrderService_PlaceOrder_Empty(t *testing.T) {
	orderService, _, _ := setupOrderServiceTest(t)

	_, err := orderService.PlaceOrder(1, OrderInput{}, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestOrderService_PlaceOrder_NoValidItems(t *testing.T) {
	orderService, testDB, _ := setupOrderServiceTest(t)

	_, err := orderService.PlaceOrder(1, OrderInput{
		ShippingAddress: "somewhere",
		PaymentMethod:   "card",
		TotalAmount:     100,
	}, []OrderItemInput{
		{ProductID: 9999, Price: 100, Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrNoValidItems)

	// The header is never persisted when every item is invalid
	var count int64
	testDB.Model(&model.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
