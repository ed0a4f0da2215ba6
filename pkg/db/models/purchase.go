package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is one checkout's order header. Card fields are stored verbatim and
// never sent to a payment network.
type Purchase struct {
	ID         int64 `gorm:"column:purchase_id;primaryKey;autoIncrement"`
	CustomerID int64 `gorm:"column:customer_id;not null"`

	Street     string `gorm:"column:street;not null"`
	City       string `gorm:"column:city;not null"`
	Province   string `gorm:"column:province;not null"`
	Country    string `gorm:"column:country;not null"`
	PostalCode string `gorm:"column:postal_code;not null"`

	CreditCard   string `gorm:"column:credit_card;not null"`
	CreditExpire string `gorm:"column:credit_expire;not null"`
	CreditCVV    string `gorm:"column:credit_cvv;not null"`

	InvoiceAmt   decimal.Decimal `gorm:"column:invoice_amt;type:numeric(10,2);not null"`
	InvoiceTax   decimal.Decimal `gorm:"column:invoice_tax;type:numeric(10,2);not null"`
	InvoiceTotal decimal.Decimal `gorm:"column:invoice_total;type:numeric(10,2);not null"`

	OrderDate time.Time `gorm:"column:order_date;not null"`

	Items []PurchaseItem `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
}

func (Purchase) TableName() string { return "purchases" }
