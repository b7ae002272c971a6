package repository

import (
	"github.com/shopzone-io/shopzone-backend/internal/app/model"
	"github.com/shopzone-io/shopzone-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository interface {
	FindByID(id uint) (*model.Product, error)
	FindBySlug(slug string) (*model.Product, error)
	FindByCategorySlug(slug string) ([]model.Product, error)
	FilterExistingIDs(ids []uint) ([]uint, error)
	Create(product *model.Product) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindBySlug(slug string) (*model.Product, error) {
	logger.Debug("Finding product by slug in database", map[string]interface{}{
		"slug": slug,
	})

	var product model.Product
	if err := r.db.Where("slug = ?", slug).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByCategorySlug(slug string) ([]model.Product, error) {
	logger.Debug("Finding products by category slug in database", map[string]interface{}{
		"category_slug": slug,
	})

	var products []model.Product
	err := r.db.
		Joins("JOIN product_categories ON product_categories.product_id = products.id").
		Joins("JOIN categories ON categories.id = product_categories.category_id").
		Where("categories.slug = ?", slug).
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to find products by category slug in database", err, map[string]interface{}{
			"category_slug": slug,
		})
		return nil, err
	}
	return products, nil
}

// FilterExistingIDs returns the subset of ids that reference catalog
// products, in one batched query. Callers use it to drop stale line items
// before bulk inserts.
func (r *productRepository) FilterExistingIDs(ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var existing []uint
	err := r.db.Model(&model.Product{}).
		Where("id IN ?", ids).
		Pluck("id", &existing).Error
	if err != nil {
		logger.Error("Failed to filter existing product IDs in database", err, map[string]interface{}{
			"requested": len(ids),
		})
		return nil, err
	}

	logger.Debug("Filtered existing product IDs in database", map[string]interface{}{
		"requested": len(ids),
		"existing":  len(existing),
	})
	return existing, nil
}

func (r *productRepository) Create(product *model.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"slug": product.Slug,
		})
		return err
	}
	return nil
}
