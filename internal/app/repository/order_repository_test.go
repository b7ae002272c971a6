package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopzone-io/shopzone-backend/internal/app/model"
	"github.com/shopzone-io/shopzone-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderTest(t *testing.T) (*gorm.DB, OrderRepository, []model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewOrderRepository(testDB)

	products := []model.Product{
		{Name: "Monitor", Slug: "monitor", Price: 15999},
		{Name: "Webcam", Slug: "webcam", Price: 3999},
	}
	for i := range products {
		require.NoError(t, testDB.Create(&products[i]).Error)
	}

	return testDB, repo, products
}

func TestOrderRepository_OrderIDRoundTrip(t *testing.T) {
	testDB, _, _ := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	// The generated identifier is the primary key, so the migrated column
	// must accept and return the UUID string unchanged.
	id := uuid.NewString()
	require.NoError(t, testDB.Create(&model.Order{OrderID: id, UserID: 1, TotalAmount: 500}).Error)

	var found model.Order
	require.NoError(t, testDB.First(&found, "order_id = ?", id).Error)
	assert.Equal(t, id, found.OrderID)
}

func TestOrderRepository_CreateWithItems(t *testing.T) {
	testDB, repo, products := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	order := &model.Order{
		OrderID:         uuid.NewString(),
		UserID:          1,
		TotalAmount:     19998,
		ShippingAddress: "42 Elm Street",
		PaymentMethod:   "card",
	}
	inserted, err := repo.CreateWithItems(order, []model.OrderItem{
		{ProductID: products[0].ID, Price: 15999, Quantity: 1},
		{ProductID: products[1].ID, Price: 3999, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.False(t, order.CreatedAt.IsZero())

	items, err := repo.FindItemsByOrderID(order.OrderID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "monitor", items[0].Product.Slug)
}

func TestOrderRepository_CreateWithItems_IgnoresDuplicates(t *testing.T) {
	testDB, repo, products := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	order := &model.Order{
		OrderID:     uuid.NewString(),
		UserID:      1,
		TotalAmount: 15999,
	}
	inserted, err := repo.CreateWithItems(order, []model.OrderItem{
		{ProductID: products[0].ID, Price: 15999, Quantity: 1},
		{ProductID: products[0].ID, Price: 15999, Quantity: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	items, err := repo.FindItemsByOrderID(order.OrderID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}
