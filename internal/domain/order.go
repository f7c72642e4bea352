package domain

import "time"

const (
	OrderTypeCart   = "cart"
	OrderTypeCustom = "custom"

	OrderStatusPending = "pending"
)

// OrderItem is a price snapshot of a catalog item at the moment the order was
// placed. Later catalog edits must not alter historical orders, so the name
// and price are copied rather than referenced.
type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Order is a checkout submission. Cart orders carry address/items/total,
// custom orders carry description/images. Status transitions after creation
// belong to the admin workflow, not to the order service.
type Order struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string      `json:"name"`
	Email       string      `gorm:"index" json:"email"`
	Phone       string      `json:"phone"`
	Address     string      `gorm:"size:2048" json:"address,omitempty"`
	Notes       string      `gorm:"size:2048" json:"notes,omitempty"`
	Description string      `gorm:"size:4096" json:"description,omitempty"`
	Items       []OrderItem `gorm:"serializer:json" json:"items,omitempty"`
	Images      []string    `gorm:"serializer:json" json:"images,omitempty"`
	Total       float64     `json:"total"`
	Type        string      `gorm:"index;size:16" json:"type"`
	Status      string      `gorm:"index;size:16" json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "orders"
}
