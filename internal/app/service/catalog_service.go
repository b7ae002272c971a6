package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopzone-io/shopzone-backend/internal/app/model"
	"github.com/shopzone-io/shopzone-backend/internal/app/repository"
	"github.com/shopzone-io/shopzone-backend/internal/cache"
	apperrors "github.com/shopzone-io/shopzone-backend/internal/errors"
	"github.com/shopzone-io/shopzone-backend/pkg/logger"
)

var ErrProductNotFound = errors.New("product not found")

const (
	topCategoryCount       = 3
	topProductsPerCategory = 10
)

// TopCategoryView is one ranked category with its highest-rated products
type TopCategoryView struct {
	CategoryID     uint            `json:"category_id"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	Image          string          `json:"image"`
	TotalPurchases int             `json:"total_purchases"`
	Products       []model.Product `json:"products"`
}

type CatalogService interface {
	GetCategories() ([]model.Category, error)
	GetTopCategories() ([]TopCategoryView, error)
	GetProductsByCategory(categorySlug string) ([]model.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*model.Product, error)
	RefreshTopCategories() error
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	cache        cache.Store
	cacheTTL     time.Duration
}

func NewCatalogService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository, store cache.Store, ttl time.Duration) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		cache:        store,
		cacheTTL:     ttl,
	}
}

func (s *catalogService) GetCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

// GetTopCategories returns the highest-purchased categories, each carrying
// its best-rated products. Rankings come from the precomputed table that the
// scheduler maintains.
func (s *catalogService) GetTopCategories() ([]TopCategoryView, error) {
	top, err := s.categoryRepo.TopCategories(topCategoryCount)
	if err != nil {
		return nil, err
	}

	views := make([]TopCategoryView, 0, len(top))
	for _, entry := range top {
		products, err := s.categoryRepo.TopProductsByCategory(entry.CategoryID, topProductsPerCategory)
		if err != nil {
			return nil, err
		}
		views = append(views, TopCategoryView{
			CategoryID:     entry.CategoryID,
			Name:           entry.Category.Name,
			Slug:           entry.Category.Slug,
			Image:          entry.Category.Image,
			TotalPurchases: entry.TotalPurchases,
			Products:       products,
		})
	}

	logger.Debug("Top categories assembled", map[string]interface{}{
		"count": len(views),
	})
	return views, nil
}

func (s *catalogService) GetProductsByCategory(categorySlug string) ([]model.Product, error) {
	return s.productRepo.FindByCategorySlug(categorySlug)
}

// GetProductBySlug serves the product detail read-through: cache first,
// database on miss, and the fetched row is written back for later hits.
func (s *catalogService) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	key := cache.ProductKey(slug)
	if cached, ok := cache.GetJSON[model.Product](ctx, s.cache, key); ok {
		logger.Debug("Product served from cache", map[string]interface{}{
			"slug": slug,
		})
		return &cached, nil
	}

	product, err := s.productRepo.FindBySlug(slug)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if err := cache.SetJSON(ctx, s.cache, key, product, s.cacheTTL); err != nil {
		logger.Warn("Failed to cache product detail", map[string]interface{}{
			"slug":  slug,
			"error": err.Error(),
		})
	}
	return product, nil
}

// RefreshTopCategories recomputes purchase totals from the order history and
// upserts them into the ranking table. Invoked by the scheduler and at boot.
func (s *catalogService) RefreshTopCategories() error {
	counts, err := s.categoryRepo.PurchaseCountsByCategory()
	if err != nil {
		return err
	}

	entries := make([]model.TopCategory, 0, len(counts))
	for _, row := range counts {
		entries = append(entries, model.TopCategory{
			CategoryID:     row.CategoryID,
			TotalPurchases: row.TotalPurchases,
		})
	}
	if err := s.categoryRepo.UpsertTopCategories(entries); err != nil {
		return err
	}

	logger.Info("Top category rankings refreshed", map[string]interface{}{
		"categories": len(entries),
	})
	return nil
}
