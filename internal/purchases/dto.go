package purchases

import (
	"strings"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// SubmitInput carries one checkout request into the workflow. Card fields are
// opaque strings; invoice amounts are caller-supplied and never recomputed.
type SubmitInput struct {
	Street     string
	City       string
	Province   string
	Country    string
	PostalCode string

	CreditCard   string
	CreditExpire string
	CreditCVV    string

	Cart string

	InvoiceAmt   decimal.Decimal
	InvoiceTax   decimal.Decimal
	InvoiceTotal decimal.Decimal
}

func (in SubmitInput) hasAllFields() bool {
	for _, field := range []string{
		in.Street,
		in.City,
		in.Province,
		in.Country,
		in.PostalCode,
		in.CreditCard,
		in.CreditExpire,
		in.CreditCVV,
		in.Cart,
	} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

// Result is the confirmed purchase: the persisted header plus its line items.
type Result struct {
	Purchase models.Purchase
	Items    []models.PurchaseItem
}
