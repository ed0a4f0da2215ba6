package models

import "time"

// Customer is the account a session resolves to. Account management lives in
// the identity service; this service only references the row.
type Customer struct {
	ID        int64     `gorm:"column:customer_id;primaryKey;autoIncrement"`
	Email     string    `gorm:"column:email;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Customer) TableName() string { return "customers" }
