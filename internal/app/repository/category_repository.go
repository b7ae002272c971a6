package repository

import (
	"github.com/shopzone-io/shopzone-backend/internal/app/model"
	"github.com/shopzone-io/shopzone-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryPurchases is one aggregation row for the top-category recompute
type CategoryPurchases struct {
	CategoryID     uint
	TotalPurchases int
}

type CategoryRepository interface {
	FindAll() ([]model.Category, error)
	FindBySlug(slug string) (*model.Category, error)
	TopCategories(limit int) ([]model.TopCategory, error)
	TopProductsByCategory(categoryID uint, limit int) ([]model.Product, error)
	PurchaseCountsByCategory() ([]CategoryPurchases, error)
	UpsertTopCategories(entries []model.TopCategory) error
	Create(category *model.Category) error
	AssignProduct(productID, categoryID uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) FindAll() ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.Find(&categories).Error; err != nil {
		logger.Error("Failed to find categories in database", err, nil)
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindBySlug(slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) TopCategories(limit int) ([]model.TopCategory, error) {
	logger.Debug("Finding top categories in database", map[string]interface{}{
		"limit": limit,
	})

	var top []model.TopCategory
	err := r.db.
		Preload("Category").
		Order("total_purchases DESC").
		Limit(limit).
		Find(&top).Error
	if err != nil {
		logger.Error("Failed to find top categories in database", err, nil)
		return nil, err
	}
	return top, nil
}

func (r *categoryRepository) TopProductsByCategory(categoryID uint, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.
		Joins("JOIN product_categories ON product_categories.product_id = products.id").
		Where("product_categories.category_id = ?", categoryID).
		Order("products.rating DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to find top products by category in database", err, map[string]interface{}{
			"category_id": categoryID,
		})
		return nil, err
	}
	return products, nil
}

// PurchaseCountsByCategory aggregates ordered quantities per category from
// the order history. Feeds the top-category recompute job.
func (r *categoryRepository) PurchaseCountsByCategory() ([]CategoryPurchases, error) {
	var rows []CategoryPurchases
	err := r.db.Model(&model.OrderItem{}).
		Select("product_categories.category_id AS category_id, SUM(order_items.quantity) AS total_purchases").
		Joins("JOIN product_categories ON product_categories.product_id = order_items.product_id").
		Group("product_categories.category_id").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to aggregate purchase counts in database", err, nil)
		return nil, err
	}
	return rows, nil
}

func (r *categoryRepository) UpsertTopCategories(entries []model.TopCategory) error {
	if len(entries) == 0 {
		return nil
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_purchases"}),
	}).Create(&entries).Error
	if err != nil {
		logger.Error("Failed to upsert top categories in database", err, map[string]interface{}{
			"count": len(entries),
		})
		return err
	}

	logger.Debug("Top categories upserted in database", map[string]interface{}{
		"count": len(entries),
	})
	return nil
}

func (r *categoryRepository) Create(category *model.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		logger.Error("Failed to create category in database", err, map[string]interface{}{
			"slug": category.Slug,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) AssignProduct(productID, categoryID uint) error {
	join := model.ProductCategory{ProductID: productID, CategoryID: categoryID}
	err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&join).Error
	if err != nil {
		logger.Error("Failed to assign product to category in database", err, map[string]interface{}{
			"product_id":  productID,
			"category_id": categoryID,
		})
		return err
	}
	return nil
}
