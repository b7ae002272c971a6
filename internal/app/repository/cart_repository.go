package repository

import (
	"errors"

	"github.com/shopzone-io/shopzone-backend/internal/app/model"
	apperrors "github.com/shopzone-io/shopzone-backend/internal/errors"
	"github.com/shopzone-io/shopzone-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	FindOrCreateByUserID(userID uint) (*model.Cart, error)
	FindByUserID(userID uint) (*model.Cart, error)
	FindItemsByUserID(userID uint) ([]model.CartItem, error)
	ExistingProductIDs(cartID uint) ([]uint, error)
	InsertItemIgnore(item *model.CartItem) (bool, error)
	BulkInsertIgnore(items []model.CartItem) (int, error)
	UpdateItemFields(cartID, productID uint, fields map[string]interface{}) error
	UpdateAllSelection(cartID uint, selected bool) error
	DeleteItems(cartID uint, productIDs []uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// FindOrCreateByUserID returns the user's cart, creating it on first use.
// A concurrent create losing the uniqueness race falls back to the winner's
// row.
func (r *cartRepository) FindOrCreateByUserID(userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to find cart by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	cart = model.Cart{UserID: userID}
	if err := r.db.Create(&cart).Error; err != nil {
		if apperrors.IsDuplicateKey(err) {
			var existing model.Cart
			if findErr := r.db.Where("user_id = ?", userID).First(&existing).Error; findErr == nil {
				return &existing, nil
			}
		}
		logger.Error("Failed to create cart in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Cart created in database", map[string]interface{}{
		"cart_id": cart.ID,
		"user_id": userID,
	})
	return &cart, nil
}

// FindByUserID returns the user's cart without creating one; callers that
// must not materialize a cart row use this over FindOrCreateByUserID.
func (r *cartRepository) FindByUserID(userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find cart by user ID in database", err, map[string]interface{}{
				"user_id": userID,
			})
		}
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) FindItemsByUserID(userID uint) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("carts.user_id = ?", userID).
		Order("cart_items.created_at ASC").
		Preload("Product").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find cart items by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Cart items found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(items),
	})
	return items, nil
}

func (r *cartRepository) ExistingProductIDs(cartID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.CartItem{}).
		Where("cart_id = ?", cartID).
		Pluck("product_id", &ids).Error
	if err != nil {
		logger.Error("Failed to list cart product IDs in database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return nil, err
	}
	return ids, nil
}

// InsertItemIgnore inserts a cart row unless the (cart, product) pair
// already exists. Returns whether a row was actually inserted; a duplicate
// is a skipped insert, not an error.
func (r *cartRepository) InsertItemIgnore(item *model.CartItem) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(item)
	if result.Error != nil {
		logger.Error("Failed to insert cart item in database", result.Error, map[string]interface{}{
			"cart_id":    item.CartID,
			"product_id": item.ProductID,
		})
		return false, result.Error
	}

	inserted := result.RowsAffected > 0
	logger.Debug("Cart item insert attempted in database", map[string]interface{}{
		"cart_id":    item.CartID,
		"product_id": item.ProductID,
		"inserted":   inserted,
	})
	return inserted, nil
}

// BulkInsertIgnore inserts new cart rows, skipping residual uniqueness
// conflicts, and returns how many rows were actually written.
func (r *cartRepository) BulkInsertIgnore(items []model.CartItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&items)
	if result.Error != nil {
		logger.Error("Failed to bulk insert cart items in database", result.Error, map[string]interface{}{
			"count": len(items),
		})
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func (r *cartRepository) UpdateItemFields(cartID, productID uint, fields map[string]interface{}) error {
	err := r.db.Model(&model.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Updates(fields).Error
	if err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_id":    cartID,
			"product_id": productID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) UpdateAllSelection(cartID uint, selected bool) error {
	err := r.db.Model(&model.CartItem{}).
		Where("cart_id = ?", cartID).
		Update("is_selected", selected).Error
	if err != nil {
		logger.Error("Failed to update cart selection in database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteItems(cartID uint, productIDs []uint) error {
	err := r.db.
		Where("cart_id = ? AND product_id IN ?", cartID, productIDs).
		Delete(&model.CartItem{}).Error
	if err != nil {
		logger.Error("Failed to delete cart items from database", err, map[string]interface{}{
			"cart_id": cartID,
			"count":   len(productIDs),
		})
		return err
	}

	logger.Debug("Cart items deleted from database", map[string]interface{}{
		"cart_id": cartID,
		"count":   len(productIDs),
	})
	return nil
}
