package repository

import (
	"testing"

	"github.com/shopzone-io/shopzone-backend/internal/app/model"
	"github.com/shopzone-io/shopzone-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartTest(t *testing.T) (*gorm.DB, CartRepository, []model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewCartRepository(testDB)

	products := []model.Product{
		{Name: "Desk Lamp", Slug: "desk-lamp", Price: 899},
		{Name: "Office Chair", Slug: "office-chair", Price: 10499},
	}
	for i := range products {
		require.NoError(t, testDB.Create(&products[i]).Error)
	}

	return testDB, repo, products
}

func TestCartRepository_FindOrCreateByUserID(t *testing.T) {
	testDB, repo, _ := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.FindOrCreateByUserID(1)
	require.NoError(t, err)
	assert.NotZero(t, cart.ID)

	// A second call returns the same cart
	again, err := repo.FindOrCreateByUserID(1)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}

func TestCartRepository_FindByUserID(t *testing.T) {
	testDB, repo, _ := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := repo.FindByUserID(1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	created, err := repo.FindOrCreateByUserID(1)
	require.NoError(t, err)

	found, err := repo.FindByUserID(1)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestCartRepository_InsertItemIgnore(t *testing.T) {
	testDB, repo, products := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.FindOrCreateByUserID(1)
	require.NoError(t, err)

	inserted, err := repo.InsertItemIgnore(&model.CartItem{
		CartID:     cart.ID,
		ProductID:  products[0].ID,
		Quantity:   2,
		IsSelected: true,
	})
	require.NoError(t, err)
	assert.True(t, inserted)

	// Conflicting insert is dropped without an error
	inserted, err = repo.InsertItemIgnore(&model.CartItem{
		CartID:     cart.ID,
		ProductID:  products[0].ID,
		Quantity:   9,
		IsSelected: false,
	})
	require.NoError(t, err)
	assert.False(t, inserted)

	items, err := repo.FindItemsByUserID(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartRepository_BulkInsertIgnore(t *testing.T) {
	testDB, repo, products := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.FindOrCreateByUserID(1)
	require.NoError(t, err)

	_, err = repo.InsertItemIgnore(&model.CartItem{
		CartID:    cart.ID,
		ProductID: products[0].ID,
		Quantity:  1,
	})
	require.NoError(t, err)

	inserted, err := repo.BulkInsertIgnore([]model.CartItem{
		{CartID: cart.ID, ProductID: products[0].ID, Quantity: 5}, // conflict
		{CartID: cart.ID, ProductID: products[1].ID, Quantity: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	items, err := repo.FindItemsByUserID(1)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCartRepository_FindItemsByUserID_Ordering(t *testing.T) {
	testDB, repo, products := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.FindOrCreateByUserID(1)
	require.NoError(t, err)

	for _, p := range products {
		_, err := repo.InsertItemIgnore(&model.CartItem{
			CartID:    cart.ID,
			ProductID: p.ID,
			Quantity:  1,
		})
		require.NoError(t, err)
	}

	items, err := repo.FindItemsByUserID(1)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Insertion order is preserved and the product is preloaded
	assert.Equal(t, products[0].ID, items[0].ProductID)
	assert.Equal(t, "desk-lamp", items[0].Product.Slug)
	assert.Equal(t, products[1].ID, items[1].ProductID)
}

func TestCartRepository_UpdateItemFields(t *testing.T) {
	testDB, repo, products := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.FindOrCreateByUserID(1)
	require.NoError(t, err)
	otherCart, err := repo.FindOrCreateByUserID(2)
	require.NoError(t, err)

	for _, cartID := range []uint{cart.ID, otherCart.ID} {
		_, err := repo.InsertItemIgnore(&model.CartItem{
			CartID:     cartID,
			ProductID:  products[0].ID,
			Quantity:   1,
			IsSelected: true,
		})
		require.NoError(t, err)
	}

	err = repo.UpdateItemFields(cart.ID, products[0].ID, map[string]interface{}{
		"quantity":    7,
		"is_selected": false,
	})
	require.NoError(t, err)

	items, err := repo.FindItemsByUserID(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
	assert.False(t, items[0].IsSelected)

	// The same product in another user's cart is untouched
	otherItems, err := repo.FindItemsByUserID(2)
	require.NoError(t, err)
	require.Len(t, otherItems, 1)
	assert.Equal(t, 1, otherItems[0].Quantity)
}

func TestCartRepository_UpdateAllSelection(t *testing.T) {
	testDB, repo, products := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.FindOrCreateByUserID(1)
	require.NoError(t, err)

	for _, p := range products {
		_, err := repo.InsertItemIgnore(&model.CartItem{
			CartID:     cart.ID,
			ProductID:  p.ID,
			Quantity:   1,
			IsSelected: true,
		})
		require.NoError(t, err)
	}

	require.NoError(t, repo.UpdateAllSelection(cart.ID, false))

	items, err := repo.FindItemsByUserID(1)
	require.NoError(t, err)
	for _, item := range items {
		assert.False(t, item.IsSelected)
	}
}

func TestCartRepository_DeleteItems(t *testing.T) {
	testDB, repo, products := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.FindOrCreateByUserID(1)
	require.NoError(t, err)

	for _, p := range products {
		_, err := repo.InsertItemIgnore(&model.CartItem{
			CartID:    cart.ID,
			ProductID: p.ID,
			Quantity:  1,
		})
		require.NoError(t, err)
	}

	require.NoError(t, repo.DeleteItems(cart.ID, []uint{products[0].ID}))

	items, err := repo.FindItemsByUserID(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, products[1].ID, items[0].ProductID)
}
