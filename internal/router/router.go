package router

import (
	"github.com/gin-gonic/gin"
	"github.com/shopzone-io/shopzone-backend/config"
	"github.com/shopzone-io/shopzone-backend/internal/app/controller"
	"github.com/shopzone-io/shopzone-backend/internal/middleware"
)

type Router struct {
	catalogController *controller.CatalogController
	cartController    *controller.CartController
	orderController   *controller.OrderController
	addressController *controller.AddressController
	authMiddleware    *middleware.AuthMiddleware
	config            *config.Config
}

func NewRouter(
	catalogController *controller.CatalogController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	addressController *controller.AddressController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		catalogController: catalogController,
		cartController:    cartController,
		orderController:   orderController,
		addressController: addressController,
		authMiddleware:    authMiddleware,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	// Tokens are optional everywhere: a verified claim overrides any
	// client-sent user_id, guests fall back to the explicit one
	router.Use(r.authMiddleware.OptionalAuthenticate())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "SHOPZONE API is running",
		})
	})

	router.GET("/categories/", r.catalogController.GetCategories)
	router.GET("/top_categories/", r.catalogController.GetTopCategories)
	router.GET("/products/:category_slug/", r.catalogController.GetProductsByCategory)
	router.GET("/product/:slug/", r.catalogController.GetProduct)

	cart := router.Group("/cart")
	{
		cart.GET("/", r.cartController.GetCart)
		cart.POST("/add/", r.cartController.AddCartItem)
		cart.POST("/merge/", r.cartController.MergeCart)
		cart.PATCH("/update/", r.cartController.UpdateCartItem)
		cart.DELETE("/delete/", r.cartController.DeleteCartItems)
	}

	order := router.Group("/order")
	{
		order.POST("/place/", r.orderController.PlaceOrder)
	}

	address := router.Group("/address")
	{
		address.GET("/", r.addressController.GetAddresses)
		address.POST("/add/", r.addressController.AddAddress)
		address.PATCH("/edit/", r.addressController.EditAddress)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
