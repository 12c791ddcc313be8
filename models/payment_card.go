package models

import "time"

// PaymentCard stores only what the storefront is allowed to show: the last
// four digits, never the full number.
type PaymentCard struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"index;not null" json:"user_id"`
	Last4      string    `gorm:"type:VARCHAR(4);not null" json:"last4"`
	HolderName string    `gorm:"not null" json:"holder_name"`
	Expiry     string    `gorm:"type:VARCHAR(5);not null" json:"expiry"` // MM/YY
	Network    string    `json:"network"`                                // e.g. "visa", "mastercard"
	CreatedAt  time.Time `json:"created_at"`
}
