package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopzone-io/shopzone-backend/internal/app/model"
	"github.com/shopzone-io/shopzone-backend/internal/app/repository"
	"github.com/shopzone-io/shopzone-backend/pkg/logger"
)

var (
	ErrEmptyOrder   = errors.New("order header or item list is empty")
	ErrNoValidItems = errors.New("order has no valid line items")
)

const orderDateFormat = "02 January 2006"

// OrderInput is the order header as submitted by the client
type OrderInput struct {
	ShippingAddress string
	PaymentMethod   string
	TotalAmount     float64
}

// OrderItemInput is one submitted line item; price and quantity are
// snapshots taken at purchase time
type OrderItemInput struct {
	ProductID uint
	Price     float64
	Quantity  int
}

// PlacedOrderItem annotates a persisted line item with the referenced
// product's display name and slug at response time
type PlacedOrderItem struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	ProductSlug string  `json:"product_slug"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// PlacedOrder is the place-order response payload
type PlacedOrder struct {
	OrderID         string            `json:"order_id"`
	TotalAmount     float64           `json:"total_amount"`
	CreatedAt       string            `json:"created_at"`
	ShippingAddress string            `json:"shipping_address"`
	PaymentMethod   string            `json:"payment_method"`
	OrderItems      []PlacedOrderItem `json:"order_items"`
}

type OrderService interface {
	PlaceOrder(userID uint, in OrderInput, items []OrderItemInput) (*PlacedOrder, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// PlaceOrder runs the two-phase validate-then-commit flow: line items are
// validated against the catalog in one batched check, invalid entries are
// dropped silently, and the header is only persisted once at least one
// valid item survives.
func (s *orderService) PlaceOrder(userID uint, in OrderInput, items []OrderItemInput) (*PlacedOrder, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	logger.Info("Placing order", map[string]interface{}{
		"user_id":      userID,
		"item_count":   len(items),
		"total_amount": in.TotalAmount,
	})

	// Build the order in memory; nothing is persisted yet
	order := &model.Order{
		OrderID:         uuid.NewString(),
		UserID:          userID,
		TotalAmount:     in.TotalAmount,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
	}

	var candidates []OrderItemInput
	for _, item := range items {
		if item.ProductID == 0 {
			continue
		}
		candidates = append(candidates, item)
	}
	if len(candidates) == 0 {
		return nil, ErrNoValidItems
	}

	ids := make([]uint, 0, len(candidates))
	for _, item := range candidates {
		ids = append(ids, item.ProductID)
	}
	validIDs, err := s.productRepo.FilterExistingIDs(ids)
	if err != nil {
		return nil, err
	}
	valid := make(map[uint]bool, len(validIDs))
	for _, id := range validIDs {
		valid[id] = true
	}

	var rows []model.OrderItem
	for _, item := range candidates {
		if !valid[item.ProductID] {
			continue
		}
		rows = append(rows, model.OrderItem{
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	if len(rows) == 0 {
		logger.Warn("Order rejected: no valid line items", map[string]interface{}{
			"user_id":   userID,
			"submitted": len(items),
		})
		return nil, ErrNoValidItems
	}

	inserted, err := s.orderRepo.CreateWithItems(order, rows)
	if err != nil {
		return nil, err
	}

	logger.Info("Order placed successfully", map[string]interface{}{
		"order_id":  order.OrderID,
		"user_id":   userID,
		"accepted":  inserted,
		"discarded": len(candidates) - len(rows),
	})

	persisted, err := s.orderRepo.FindItemsByOrderID(order.OrderID)
	if err != nil {
		return nil, err
	}

	response := &PlacedOrder{
		OrderID:         order.OrderID,
		TotalAmount:     order.TotalAmount,
		CreatedAt:       order.CreatedAt.Format(orderDateFormat),
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
		OrderItems:      make([]PlacedOrderItem, 0, len(persisted)),
	}
	for _, item := range persisted {
		response.OrderItems = append(response.OrderItems, PlacedOrderItem{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			ProductSlug: item.Product.Slug,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}

	return response, nil
}
