package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopzone-io/shopzone-backend/internal/app/service"
	apperrors "github.com/shopzone-io/shopzone-backend/internal/errors"
	"github.com/shopzone-io/shopzone-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddCartItemRequest struct {
	UserID   uint `json:"user_id"`
	CartItem struct {
		ProductID  uint  `json:"product_id"`
		Quantity   int   `json:"quantity"`
		IsSelected *bool `json:"is_selected"`
	} `json:"cart_item"`
}

type MergeCartRequest struct {
	UserID    uint `json:"user_id"`
	CartItems []struct {
		Product struct {
			ID uint `json:"id"`
		} `json:"product"`
		Quantity   int  `json:"quantity"`
		IsSelected bool `json:"is_selected"`
	} `json:"cart_items"`
}

type UpdateCartRequest struct {
	UserID   uint `json:"user_id"`
	CartItem struct {
		ProductID  *uint `json:"product_id"`
		Quantity   *int  `json:"quantity"`
		IsSelected *bool `json:"is_selected"`
	} `json:"cart_item"`
}

// resolveUserID prefers the authenticated identity and falls back to the
// user_id the client sent (body value for writes, query param for reads)
func resolveUserID(c *gin.Context, bodyUserID uint) (uint, bool) {
	if userID, ok := middleware.GetUserID(c); ok {
		return userID, true
	}
	if bodyUserID != 0 {
		return bodyUserID, true
	}
	if raw := c.Query("user_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil && id != 0 {
			return uint(id), true
		}
	}
	return 0, false
}

// GetCart returns the user's cart list
// GET /cart/?user_id=
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := resolveUserID(c, 0)
	if !ok {
		log.Warn("Cart requested without user identity", nil)
		apperrors.BadRequest(c)
		return
	}

	items, err := ctrl.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch cart")
		return
	}

	c.JSON(http.StatusOK, items)
}

// AddCartItem adds one item to the user's cart
// POST /cart/add/
func (ctrl *CartController) AddCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c)
		return
	}

	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		apperrors.BadRequest(c)
		return
	}

	items, err := ctrl.cartService.AddItem(c.Request.Context(), userID, service.CartItemInput{
		ProductID:  req.CartItem.ProductID,
		Quantity:   req.CartItem.Quantity,
		IsSelected: req.CartItem.IsSelected,
	})
	if err != nil {
		log.Error("Failed to add item to cart", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": req.CartItem.ProductID,
		})
		apperrors.InternalError(c, "Failed to add item to cart")
		return
	}

	c.JSON(http.StatusOK, items)
}

// MergeCart merges a client-held guest cart into the user's cart
// POST /cart/merge/
func (ctrl *CartController) MergeCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req MergeCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid merge cart request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c)
		return
	}

	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		apperrors.BadRequest(c)
		return
	}

	inputs := make([]service.MergeItemInput, 0, len(req.CartItems))
	for _, item := range req.CartItems {
		inputs = append(inputs, service.MergeItemInput{
			ProductID:  item.Product.ID,
			Quantity:   item.Quantity,
			IsSelected: item.IsSelected,
		})
	}

	items, err := ctrl.cartService.MergeCart(c.Request.Context(), userID, inputs)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMerge) {
			log.Warn("Merge payload had no processable items", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.BadRequest(c)
			return
		}
		log.Error("Failed to merge cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to merge cart")
		return
	}

	c.JSON(http.StatusOK, items)
}

// UpdateCartItem updates one cart row or every row's selection
// PATCH /cart/update/
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update cart request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c)
		return
	}

	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		apperrors.BadRequest(c)
		return
	}

	items, err := ctrl.cartService.UpdateItems(c.Request.Context(), userID, service.UpdateItemInput{
		ProductID:  req.CartItem.ProductID,
		Quantity:   req.CartItem.Quantity,
		IsSelected: req.CartItem.IsSelected,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidUpdate) {
			log.Warn("Update request matched no recognized shape", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.BadRequest(c)
			return
		}
		log.Error("Failed to update cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to update cart")
		return
	}

	c.JSON(http.StatusOK, items)
}

// DeleteCartItems removes the given products from the user's cart
// DELETE /cart/delete/?user_id=&product_ids=1,2,3
func (ctrl *CartController) DeleteCartItems(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := resolveUserID(c, 0)
	if !ok {
		apperrors.BadRequest(c)
		return
	}

	var productIDs []uint
	for _, raw := range strings.Split(c.Query("product_ids"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			log.Warn("Invalid product id in delete request", map[string]interface{}{
				"user_id": userID,
				"raw":     raw,
			})
			apperrors.BadRequest(c)
			return
		}
		productIDs = append(productIDs, uint(id))
	}

	items, err := ctrl.cartService.DeleteItems(c.Request.Context(), userID, productIDs)
	if err != nil {
		if errors.Is(err, service.ErrNoProductIDs) {
			log.Warn("Delete requested without product ids", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.BadRequest(c)
			return
		}
		log.Error("Failed to delete cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to delete cart items")
		return
	}

	c.JSON(http.StatusOK, items)
}
