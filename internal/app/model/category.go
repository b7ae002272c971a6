package model

import "time"

type Category struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Slug  string `gorm:"uniqueIndex;not null" json:"slug"`
	Image string `json:"image"`

	Products []Product `gorm:"many2many:product_categories;" json:"products,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

// ProductCategory is the product/category join row; created_at is kept so
// category membership can be ordered by assignment time.
type ProductCategory struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ProductID  uint      `gorm:"not null;uniqueIndex:idx_product_category" json:"product_id"`
	CategoryID uint      `gorm:"not null;uniqueIndex:idx_product_category" json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ProductCategory) TableName() string {
	return "product_categories"
}

// TopCategory ranks a category by its accumulated purchase count.
// Rows are recomputed by the scheduler, not maintained inline on checkout.
type TopCategory struct {
	ID             uint     `gorm:"primarykey" json:"id"`
	CategoryID     uint     `gorm:"uniqueIndex;not null" json:"category_id"`
	TotalPurchases int      `gorm:"default:0" json:"total_purchases"`
	Category       Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (TopCategory) TableName() string {
	return "top_categories"
}
