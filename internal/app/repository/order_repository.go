package repository

import (
	"github.com/shopzone-io/shopzone-backend/internal/app/model"
	"github.com/shopzone-io/shopzone-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	CreateWithItems(order *model.Order, items []model.OrderItem) (int, error)
	FindItemsByOrderID(orderID string) ([]model.OrderItem, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithItems persists the order header and its line items in one
// transaction. Duplicate (order, product) conflicts in the bulk insert are
// skipped defensively; the returned count is the number of rows written.
// The header is never committed without items: callers validate first.
func (r *orderRepository) CreateWithItems(order *model.Order, items []model.OrderItem) (int, error) {
	var inserted int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.OrderID
		}

		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&items)
		if result.Error != nil {
			return result.Error
		}
		inserted = result.RowsAffected
		return nil
	})
	if err != nil {
		logger.Error("Failed to persist order in database", err, map[string]interface{}{
			"order_id": order.OrderID,
			"user_id":  order.UserID,
		})
		return 0, err
	}

	logger.Debug("Order persisted in database", map[string]interface{}{
		"order_id":       order.OrderID,
		"items_inserted": inserted,
	})
	return int(inserted), nil
}

func (r *orderRepository) FindItemsByOrderID(orderID string) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.
		Where("order_id = ?", orderID).
		Preload("Product").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find order items in database", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	return items, nil
}
