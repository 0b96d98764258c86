package models

import (
	"time"

	"gorm.io/gorm"
)

type Medicine struct {
	gorm.Model
	Name        string     `gorm:"column:name;size:255;not null" json:"name"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	Quantity    int        `gorm:"column:quantity;not null;default:0" json:"quantity"`
	Price       float64    `gorm:"column:price;not null" json:"price"`
	Supplier    string     `gorm:"column:supplier;size:255" json:"supplier"`
	ExpiryDate  *time.Time `gorm:"column:expiry_date" json:"expiry_date"`
	Category    string     `gorm:"column:category;size:100" json:"category"`
	BatchNumber string     `gorm:"column:batch_number;size:100" json:"batch_number"`
}
