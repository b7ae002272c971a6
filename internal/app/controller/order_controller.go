package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopzone-io/shopzone-backend/internal/app/service"
	apperrors "github.com/shopzone-io/shopzone-backend/internal/errors"
	"github.com/shopzone-io/shopzone-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type PlaceOrderRequest struct {
	UserID uint `json:"user_id"`
	Order  *struct {
		ShippingAddress string  `json:"shipping_address"`
		PaymentMethod   string  `json:"payment_method"`
		TotalAmount     float64 `json:"total_amount"`
	} `json:"order"`
	OrderItems []struct {
		ProductID uint    `json:"product_id"`
		Price     float64 `json:"price"`
		Quantity  int     `json:"quantity"`
	} `json:"order_items"`
}

// PlaceOrder validates and commits an order
// POST /order/place/
func (ctrl *OrderController) PlaceOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid place order request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c)
		return
	}

	userID, ok := resolveUserID(c, req.UserID)
	if !ok || req.Order == nil || len(req.OrderItems) == 0 {
		apperrors.BadRequest(c)
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		items = append(items, service.OrderItemInput{
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	placed, err := ctrl.orderService.PlaceOrder(userID, service.OrderInput{
		ShippingAddress: req.Order.ShippingAddress,
		PaymentMethod:   req.Order.PaymentMethod,
		TotalAmount:     req.Order.TotalAmount,
	}, items)
	if err != nil {
		if errors.Is(err, service.ErrEmptyOrder) || errors.Is(err, service.ErrNoValidItems) {
			log.Warn("Order rejected", map[string]interface{}{
				"user_id": userID,
				"reason":  err.Error(),
			})
			apperrors.BadRequest(c)
			return
		}
		log.Error("Failed to place order", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to place order")
		return
	}

	c.JSON(http.StatusOK, placed)
}
