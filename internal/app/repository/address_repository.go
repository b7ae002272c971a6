package repository

import (
	"github.com/shopzone-io/shopzone-backend/internal/app/model"
	"github.com/shopzone-io/shopzone-backend/pkg/logger"
	"gorm.io/gorm"
)

type AddressRepository interface {
	Create(address *model.ShippingAddress) error
	FindByUserID(userID uint) ([]model.ShippingAddress, error)
	FindByID(id uint) (*model.ShippingAddress, error)
	CountByUserID(userID uint) (int64, error)
	UpdateFields(id uint, fields map[string]interface{}) error
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(address *model.ShippingAddress) error {
	if err := r.db.Create(address).Error; err != nil {
		logger.Error("Failed to create address in database", err, map[string]interface{}{
			"user_id": address.UserID,
		})
		return err
	}

	logger.Debug("Address created in database", map[string]interface{}{
		"address_id": address.ID,
		"user_id":    address.UserID,
	})
	return nil
}

func (r *addressRepository) FindByUserID(userID uint) ([]model.ShippingAddress, error) {
	var addresses []model.ShippingAddress
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&addresses).Error
	if err != nil {
		logger.Error("Failed to find addresses by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return addresses, nil
}

func (r *addressRepository) FindByID(id uint) (*model.ShippingAddress, error) {
	var address model.ShippingAddress
	if err := r.db.First(&address, id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ShippingAddress{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count addresses in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return 0, err
	}
	return count, nil
}

func (r *addressRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	err := r.db.Model(&model.ShippingAddress{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		logger.Error("Failed to update address in database", err, map[string]interface{}{
			"address_id": id,
		})
		return err
	}
	return nil
}
