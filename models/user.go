package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        string        `gorm:"primaryKey" json:"id"`
	Email     string        `gorm:"unique;not null" json:"email"`
	Phone     string        `json:"phone"`
	Name      string        `json:"name"`
	Picture   string        `json:"picture"`
	Provider  string        `json:"provider"` // "google", "password", "otp"
	Password  string        `json:"-"`        // bcrypt hash; empty for federated users
	Role      string        `gorm:"type:VARCHAR(10);default:'user'" json:"role"`
	Address   Address       `gorm:"embedded" json:"address"` // Embeds address fields directly
	Cart      Cart          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Cards     []PaymentCard `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cards"`
	CreatedAt time.Time     `json:"created_at"`
}

// Address model embedded in User
type Address struct {
	Country    string `json:"country"`
	State      string `json:"state"`
	City       string `json:"city"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
}
