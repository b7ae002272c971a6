package repository

import (
	"testing"

	"github.com/shopzone-io/shopzone-backend/internal/app/model"
	"github.com/shopzone-io/shopzone-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAddressTest(t *testing.T) (*gorm.DB, AddressRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	return testDB, NewAddressRepository(testDB)
}

func TestAddressRepository_CreateAndFind(t *testing.T) {
	testDB, repo := setupAddressTest(t)
	defer db.CleanupTestDB(testDB)

	address := &model.ShippingAddress{
		UserID:       1,
		FullName:     "Asha Rao",
		MobileNumber: "9876543210",
		PinCode:      "560001",
		Address1:     "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		IsDefault:    true,
	}
	require.NoError(t, repo.Create(address))
	assert.NotZero(t, address.ID)

	require.NoError(t, repo.Create(&model.ShippingAddress{
		UserID:   1,
		FullName: "Asha Rao",
		City:     "Mysuru",
	}))

	addresses, err := repo.FindByUserID(1)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.Equal(t, "Bengaluru", addresses[0].City)

	count, err := repo.CountByUserID(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByUserID(2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestAddressRepository_UpdateFields(t *testing.T) {
	testDB, repo := setupAddressTest(t)
	defer db.CleanupTestDB(testDB)

	address := &model.ShippingAddress{UserID: 1, FullName: "Asha Rao", City: "Bengaluru"}
	require.NoError(t, repo.Create(address))

	err := repo.UpdateFields(address.ID, map[string]interface{}{
		"city":     "Mysuru",
		"pin_code": "570001",
	})
	require.NoError(t, err)

	updated, err := repo.FindByID(address.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mysuru", updated.City)
	assert.Equal(t, "570001", updated.PinCode)
	assert.Equal(t, "Asha Rao", updated.FullName)

	_, err = repo.FindByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
