package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopzone-io/shopzone-backend/internal/app/model"
	"github.com/shopzone-io/shopzone-backend/internal/app/repository"
	"github.com/shopzone-io/shopzone-backend/internal/app/service"
	"github.com/shopzone-io/shopzone-backend/internal/cache"
	"github.com/shopzone-io/shopzone-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	categoryRepo := repository.NewCategoryRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	catalogService := service.NewCatalogService(categoryRepo, productRepo, cache.NewMemoryStore(), time.Minute)
	catalogController := NewCatalogController(catalogService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/categories/", catalogController.GetCategories)
	router.GET("/products/:category_slug/", catalogController.GetProductsByCategory)
	router.GET("/product/:slug/", catalogController.GetProduct)

	return router, testDB
}

func TestCatalogController_GetCategories(t *testing.T) {
	router, testDB := setupCatalogControllerTest(t)

	require.NoError(t, testDB.Create(&model.Category{Name: "Garden", Slug: "garden"}).Error)

	req := httptest.NewRequest(http.MethodGet, "/categories/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var categories []model.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "garden", categories[0].Slug)
}

func TestCatalogController_GetProduct(t *testing.T) {
	router, testDB := setupCatalogControllerTest(t)

	require.NoError(t, testDB.Create(&model.Product{
		Name:  "Garden Hose",
		Slug:  "garden-hose",
		Price: 1299,
	}).Error)

	req := httptest.NewRequest(http.MethodGet, "/product/garden-hose/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var product model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, "Garden Hose", product.Name)
}

func TestCatalogController_GetProduct_NotFound(t *testing.T) {
	router, _ := setupCatalogControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/product/missing/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
