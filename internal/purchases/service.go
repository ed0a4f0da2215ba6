package purchases

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"gorm.io/gorm"
)

const defaultWriteTimeout = 5 * time.Second

var errMalformedCart = pkgerrors.New(pkgerrors.CodeValidation, "Cart must be a comma-separated list of product ids.")

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service executes the purchase workflow.
type Service interface {
	Submit(ctx context.Context, customerID int64, input SubmitInput) (*Result, error)
}

type service struct {
	tx           txRunner
	repo         Repository
	writeTimeout time.Duration
	now          func() time.Time
}

// NewService builds the purchase service.
func NewService(tx txRunner, repo Repository, writeTimeout time.Duration) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("repository required")
	}
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	return &service{
		tx:           tx,
		repo:         repo,
		writeTimeout: writeTimeout,
		now:          time.Now,
	}, nil
}

// Submit validates the checkout, resolves the cart against the catalog, and
// persists the purchase header plus its line items in one transaction. Nothing
// is written unless every cart entry resolves.
func (s *service) Submit(ctx context.Context, customerID int64, input SubmitInput) (*Result, error) {
	if customerID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "User not logged in.")
	}
	if !input.hasAllFields() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "All fields are required.")
	}

	cart, err := parseCart(input.Cart)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	products, err := s.repo.FindProductsByIDs(ctx, cart.distinct)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve cart products")
	}
	if len(products) != len(cart.distinct) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Some products not found.")
	}

	purchase := &models.Purchase{
		CustomerID:   customerID,
		Street:       input.Street,
		City:         input.City,
		Province:     input.Province,
		Country:      input.Country,
		PostalCode:   input.PostalCode,
		CreditCard:   input.CreditCard,
		CreditExpire: input.CreditExpire,
		CreditCVV:    input.CreditCVV,
		InvoiceAmt:   input.InvoiceAmt,
		InvoiceTax:   input.InvoiceTax,
		InvoiceTotal: input.InvoiceTotal,
		OrderDate:    s.now().UTC(),
	}

	var items []models.PurchaseItem
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		created, err := repo.CreatePurchase(ctx, purchase)
		if err != nil {
			return err
		}

		items = make([]models.PurchaseItem, 0, len(cart.distinct))
		for _, productID := range cart.distinct {
			items = append(items, models.PurchaseItem{
				PurchaseID: created.ID,
				ProductID:  productID,
				Quantity:   cart.counts[productID],
			})
		}
		return repo.CreatePurchaseItems(ctx, items)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist purchase")
	}

	return &Result{Purchase: *purchase, Items: items}, nil
}
