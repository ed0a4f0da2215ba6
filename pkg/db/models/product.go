package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog listing. Read-only from the purchase path.
type Product struct {
	ID          int64           `gorm:"column:product_id;primaryKey;autoIncrement"`
	Name        string          `gorm:"column:name;not null"`
	Description *string         `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Product) TableName() string { return "products" }
