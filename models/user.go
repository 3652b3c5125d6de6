package models

import "time"

type User struct {
	ID        string     `gorm:"primaryKey" json:"id"`
	Email     string     `gorm:"unique;not null" json:"email"`
	Name      string     `json:"name"`
	Address   Address    `gorm:"embedded" json:"address"`
	CartItems []CartItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Orders    []Order    `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt time.Time  `json:"created_at"`
}

// Address model embedded in User
type Address struct {
	Country    string `json:"country"`
	City       string `json:"city"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
}
