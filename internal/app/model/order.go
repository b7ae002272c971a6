package model

import "time"

// Order is immutable once created. The identifier is generated server-side,
// never user-supplied.
type Order struct {
	OrderID         string    `gorm:"type:varchar(36);primarykey" json:"order_id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	TotalAmount     float64   `gorm:"not null" json:"total_amount"`
	ShippingAddress string    `gorm:"type:text" json:"shipping_address"`
	PaymentMethod   string    `gorm:"size:50" json:"payment_method"`
	CreatedAt       time.Time `json:"created_at"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem snapshots price and quantity at purchase time; live product
// name/slug are joined in at response time instead of being stored twice.
type OrderItem struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	OrderID   string  `gorm:"type:varchar(36);not null;uniqueIndex:idx_order_product" json:"order_id"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_order_product" json:"product_id"`
	Price     float64 `gorm:"not null;default:0" json:"price"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`

	Order   Order   `gorm:"foreignKey:OrderID;references:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
