package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopzone-io/shopzone-backend/internal/app/model"
	"github.com/shopzone-io/shopzone-backend/internal/app/repository"
	"github.com/shopzone-io/shopzone-backend/internal/app/service"
	"github.com/shopzone-io/shopzone-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOrderControllerTest(t *testing.T) (*gin.Engine, []model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	orderService := service.NewOrderService(orderRepo, productRepo)
	orderController := NewOrderController(orderService)

	products := []model.Product{
		{Name: "Running Shoes", Slug: "running-shoes", Price: 4599},
	}
	for i := range products {
		require.NoError(t, testDB.Create(&products[i]).Error)
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/order/place/", orderController.PlaceOrder)

	return router, products
}

func TestOrderController_PlaceOrder(t *testing.T) {
	router, products := setupOrderControllerTest(t)

	body, _ := json.Marshal(gin.H{
		"user_id": 1,
		"order": gin.H{
			"shipping_address": "42 Elm Street",
			"payment_method":   "card",
			"total_amount":     4599,
		},
		"order_items": []gin.H{
			{"product_id": products[0].ID, "price": 4599, "quantity": 1},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/order/place/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var placed service.PlacedOrder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	assert.NotEmpty(t, placed.OrderID)
	require.Len(t, placed.OrderItems, 1)
	assert.Equal(t, "running-shoes", placed.OrderItems[0].ProductSlug)
}

func TestOrderController_PlaceOrder_MissingHeader(t *testing.T) {
	router, products := setupOrderControllerTest(t)

	body, _ := json.Marshal(gin.H{
		"user_id": 1,
		"order_items": []gin.H{
			{"product_id": products[0].ID, "price": 4599, "quantity": 1},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/order/place/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Bad Request"}`, w.Body.String())
}

func TestOrderController_PlaceOrder_AllItemsInvalid(t *testing.T) {
	router, _ := setupOrderControllerTest(t)

	body, _ := json.Marshal(gin.H{
		"user_id": 1,
		"order": gin.H{
			"shipping_address": "42 Elm Street",
			"payment_method":   "card",
			"total_amount":     100,
		},
		"order_items": []gin.H{
			{"product_id": 9999, "price": 100, "quantity": 1},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/order/place/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Bad Request"}`, w.Body.String())
}
