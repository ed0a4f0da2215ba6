package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/purchases"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

// PurchaseSubmit handles one checkout submission for the session's customer.
func PurchaseSubmit(svc purchases.Service, m *metrics.PurchaseMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchase service unavailable"))
			return
		}

		customerID := middleware.CustomerIDFromContext(r.Context())
		if customerID <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "User not logged in."))
			return
		}

		var payload purchaseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			m.Observe("validation", 0)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		start := time.Now()
		result, err := svc.Submit(r.Context(), customerID, payload.toInput())
		if err != nil {
			m.Observe(outcomeFor(err), time.Since(start))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		m.Observe("success", time.Since(start))

		responses.WriteSuccessStatus(w, http.StatusCreated, newPurchaseResponse(result))
	}
}

func outcomeFor(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return "internal"
	}
	switch typed.Code() {
	case pkgerrors.CodeValidation:
		return "validation"
	case pkgerrors.CodeUnauthorized:
		return "unauthorized"
	case pkgerrors.CodeNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

type purchaseRequest struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	Province   string `json:"province" validate:"required"`
	Country    string `json:"country" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`

	CreditCard   string `json:"credit_card" validate:"required"`
	CreditExpire string `json:"credit_expire" validate:"required"`
	CreditCVV    string `json:"credit_cvv" validate:"required"`

	Cart string `json:"cart" validate:"required"`

	InvoiceAmt   *decimal.Decimal `json:"invoice_amt" validate:"required"`
	InvoiceTax   *decimal.Decimal `json:"invoice_tax" validate:"required"`
	InvoiceTotal *decimal.Decimal `json:"invoice_total" validate:"required"`
}

func (p purchaseRequest) toInput() purchases.SubmitInput {
	input := purchases.SubmitInput{
		Street:       p.Street,
		City:         p.City,
		Province:     p.Province,
		Country:      p.Country,
		PostalCode:   p.PostalCode,
		CreditCard:   p.CreditCard,
		CreditExpire: p.CreditExpire,
		CreditCVV:    p.CreditCVV,
		Cart:         p.Cart,
	}
	if p.InvoiceAmt != nil {
		input.InvoiceAmt = *p.InvoiceAmt
	}
	if p.InvoiceTax != nil {
		input.InvoiceTax = *p.InvoiceTax
	}
	if p.InvoiceTotal != nil {
		input.InvoiceTotal = *p.InvoiceTotal
	}
	return input
}

type purchaseResponse struct {
	Message  string         `json:"message"`
	Purchase purchaseHeader `json:"purchase"`
	Items    []purchaseItem `json:"items"`
}

type purchaseHeader struct {
	PurchaseID   int64           `json:"purchase_id"`
	CustomerID   int64           `json:"customer_id"`
	Street       string          `json:"street"`
	City         string          `json:"city"`
	Province     string          `json:"province"`
	Country      string          `json:"country"`
	PostalCode   string          `json:"postal_code"`
	InvoiceAmt   decimal.Decimal `json:"invoice_amt"`
	InvoiceTax   decimal.Decimal `json:"invoice_tax"`
	InvoiceTotal decimal.Decimal `json:"invoice_total"`
	OrderDate    time.Time       `json:"order_date"`
}

type purchaseItem struct {
	PurchaseID int64 `json:"purchase_id"`
	ProductID  int64 `json:"product_id"`
	Quantity   int   `json:"quantity"`
}

func newPurchaseResponse(result *purchases.Result) purchaseResponse {
	if result == nil {
		return purchaseResponse{}
	}
	items := make([]purchaseItem, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, newPurchaseItem(item))
	}
	return purchaseResponse{
		Message:  "Purchase completed successfully.",
		Purchase: newPurchaseHeader(result.Purchase),
		Items:    items,
	}
}

func newPurchaseHeader(p models.Purchase) purchaseHeader {
	return purchaseHeader{
		PurchaseID:   p.ID,
		CustomerID:   p.CustomerID,
		Street:       p.Street,
		City:         p.City,
		Province:     p.Province,
		Country:      p.Country,
		PostalCode:   p.PostalCode,
		InvoiceAmt:   p.InvoiceAmt,
		InvoiceTax:   p.InvoiceTax,
		InvoiceTotal: p.InvoiceTotal,
		OrderDate:    p.OrderDate,
	}
}

func newPurchaseItem(item models.PurchaseItem) purchaseItem {
	return purchaseItem{
		PurchaseID: item.PurchaseID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
	}
}
