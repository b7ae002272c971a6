package model

import "time"

// Cart is created lazily on the first add/merge and never deleted.
// One cart per user.
type Cart struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Cart) TableName() string {
	return "carts"
}

// CartItem holds one product per cart; the (cart_id, product_id) uniqueness
// constraint is the concurrency backstop for duplicate adds.
type CartItem struct {
	ID        uint `gorm:"primarykey" json:"id"`
	CartID    uint `gorm:"not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Quantity  int  `gorm:"not null;default:1" json:"quantity"`
	// No column default: an explicit false must survive the insert, the
	// true-by-default rule lives in the service layer
	IsSelected bool      `gorm:"not null" json:"is_selected"`
	CreatedAt  time.Time `json:"created_at"`

	Cart    Cart    `gorm:"foreignKey:CartID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
