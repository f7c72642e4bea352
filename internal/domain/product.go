package domain

import "time"

// Product is a catalog item shown on the storefront
type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"index" json:"name"`
	Description string    `gorm:"size:4096" json:"description"`
	Price       float64   `json:"price"` // price in main currency units, never negative
	Image       string    `gorm:"size:1024" json:"image"` // URL to product image
	Category    string    `gorm:"index;size:128" json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

// Category is a content-management grouping for the storefront UI, with an
// independent lifecycle from Product
type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"index" json:"name"`
	Description string    `gorm:"size:2048" json:"description"`
	Image       string    `gorm:"size:1024" json:"image"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Category) TableName() string {
	return "categories"
}
