package models

// PurchaseItem records one distinct product's quantity within a purchase.
// Rows only exist alongside their parent purchase.
type PurchaseItem struct {
	PurchaseID int64 `gorm:"column:purchase_id;primaryKey"`
	ProductID  int64 `gorm:"column:product_id;primaryKey"`
	Quantity   int   `gorm:"column:quantity;not null"`
}

func (PurchaseItem) TableName() string { return "purchase_items" }
