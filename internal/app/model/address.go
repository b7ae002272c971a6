package model

import "time"

// ShippingAddress belongs to one user. At most one row per user carries
// is_default=true; the invariant is enforced in the service layer, not by
// the store.
type ShippingAddress struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	FullName     string    `gorm:"size:150" json:"full_name"`
	MobileNumber string    `gorm:"size:10" json:"mobile_number"`
	PinCode      string    `gorm:"size:10" json:"pin_code"`
	Address1     string    `gorm:"type:text" json:"address1"`
	Address2     string    `gorm:"type:text" json:"address2"`
	City         string    `gorm:"size:150" json:"city"`
	State        string    `gorm:"size:150" json:"state"`
	IsDefault    bool      `gorm:"default:false" json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`

	// IsSelected marks the row acted upon in the current response.
	// Never persisted.
	IsSelected bool `gorm:"-" json:"is_selected"`
}

func (ShippingAddress) TableName() string {
	return "shipping_addresses"
}
