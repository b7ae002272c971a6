package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Description is a list of paragraphs stored as a JSON column.
// Single-string payloads from older clients are coerced to a one-element list.
type Description []string

func (d Description) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

func (d *Description) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported description column type")
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		*d = list
		return nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err != nil {
		return err
	}
	*d = Description{single}
	return nil
}

type Product struct {
	ID           uint        `gorm:"primarykey" json:"id"`
	Name         string      `gorm:"size:100;not null" json:"name"`
	Slug         string      `gorm:"uniqueIndex;not null" json:"slug"`
	Description  Description `gorm:"type:text" json:"description"`
	Price        float64     `gorm:"not null" json:"price"`
	Rating       float64     `json:"rating"`
	FastDelivery bool        `gorm:"default:false" json:"fast_delivery"`
	InStock      bool        `json:"in_stock"`
	Quantity     int         `gorm:"default:10" json:"quantity"`
	Seller       string      `gorm:"size:100" json:"seller"`
	Image        string      `json:"image"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	Categories []Category `gorm:"many2many:product_categories;" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
