package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopzone-io/shopzone-backend/internal/app/service"
	apperrors "github.com/shopzone-io/shopzone-backend/internal/errors"
	"github.com/shopzone-io/shopzone-backend/internal/middleware"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// GetCategories returns every category
// GET /categories/
func (ctrl *CatalogController) GetCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.catalogService.GetCategories()
	if err != nil {
		log.Error("Failed to fetch categories", err, nil)
		apperrors.InternalError(c, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetTopCategories returns the most purchased categories with their
// highest-rated products
// GET /top_categories/
func (ctrl *CatalogController) GetTopCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	top, err := ctrl.catalogService.GetTopCategories()
	if err != nil {
		log.Error("Failed to fetch top categories", err, nil)
		apperrors.InternalError(c, "Failed to fetch top categories")
		return
	}

	c.JSON(http.StatusOK, top)
}

// GetProductsByCategory returns the products under a category slug
// GET /products/:category_slug/
func (ctrl *CatalogController) GetProductsByCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	categorySlug := c.Param("category_slug")

	products, err := ctrl.catalogService.GetProductsByCategory(categorySlug)
	if err != nil {
		log.Error("Failed to fetch products by category", err, map[string]interface{}{
			"category_slug": categorySlug,
		})
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	log.Info("Products fetched successfully", map[string]interface{}{
		"category_slug": categorySlug,
		"count":         len(products),
	})

	c.JSON(http.StatusOK, products)
}

// GetProduct returns one product detail by slug
// GET /product/:slug/
func (ctrl *CatalogController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	slug := c.Param("slug")

	product, err := ctrl.catalogService.GetProductBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"slug": slug,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"slug": slug,
		})
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, product)
}
