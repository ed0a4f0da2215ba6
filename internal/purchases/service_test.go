package purchases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubTxRunner struct {
	err   error
	calls int
}

func (s *stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	return fn(nil)
}

type stubRepository struct {
	products map[int64]models.Product

	findErr   error
	createErr error
	itemsErr  error

	nextID       int64
	createdCount int
	savedItems   []models.PurchaseItem
}

func (s *stubRepository) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepository) FindProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	var found []models.Product
	for _, id := range ids {
		if product, ok := s.products[id]; ok {
			found = append(found, product)
		}
	}
	return found, nil
}

func (s *stubRepository) CreatePurchase(ctx context.Context, purchase *models.Purchase) (*models.Purchase, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.nextID++
	s.createdCount++
	purchase.ID = s.nextID
	return purchase, nil
}

func (s *stubRepository) CreatePurchaseItems(ctx context.Context, items []models.PurchaseItem) error {
	if s.itemsErr != nil {
		return s.itemsErr
	}
	s.savedItems = append(s.savedItems, items...)
	return nil
}

func validInput() SubmitInput {
	return SubmitInput{
		Street:       "123 Main St",
		City:         "Halifax",
		Province:     "NS",
		Country:      "Canada",
		PostalCode:   "B3H 1A1",
		CreditCard:   "4111111111111111",
		CreditExpire: "12/27",
		CreditCVV:    "123",
		Cart:         "2,5,5,4",
		InvoiceAmt:   decimal.NewFromFloat(99.48),
		InvoiceTax:   decimal.NewFromFloat(14.92),
		InvoiceTotal: decimal.NewFromFloat(114.40),
	}
}

func catalog(ids ...int64) map[int64]models.Product {
	products := map[int64]models.Product{}
	for _, id := range ids {
		products[id] = models.Product{ID: id, Name: "Product", Price: decimal.NewFromInt(10)}
	}
	return products
}

func TestSubmitPersistsPurchaseWithDedupedItems(t *testing.T) {
	t.Parallel()

	repo := &stubRepository{products: catalog(2, 4, 5)}
	tx := &stubTxRunner{}
	svc, err := NewService(tx, repo, time.Second)
	require.NoError(t, err)

	result, err := svc.Submit(context.Background(), 7, validInput())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, int64(1), result.Purchase.ID)
	assert.Equal(t, int64(7), result.Purchase.CustomerID)
	assert.False(t, result.Purchase.OrderDate.IsZero())
	assert.Equal(t, time.UTC, result.Purchase.OrderDate.Location())

	require.Len(t, result.Items, 3)
	assert.Equal(t, models.PurchaseItem{PurchaseID: 1, ProductID: 2, Quantity: 1}, result.Items[0])
	assert.Equal(t, models.PurchaseItem{PurchaseID: 1, ProductID: 5, Quantity: 2}, result.Items[1])
	assert.Equal(t, models.PurchaseItem{PurchaseID: 1, ProductID: 4, Quantity: 1}, result.Items[2])

	total := 0
	for _, item := range result.Items {
		total += item.Quantity
	}
	assert.Equal(t, 4, total)

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 1, repo.createdCount)
}

func TestSubmitRejectsMissingCustomer(t *testing.T) {
	t.Parallel()

	repo := &stubRepository{products: catalog(2)}
	svc, err := NewService(&stubTxRunner{}, repo, time.Second)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 0, validInput())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
	assert.Equal(t, 0, repo.createdCount)
}

func TestSubmitRejectsMissingFields(t *testing.T) {
	t.Parallel()

	repo := &stubRepository{products: catalog(2)}
	svc, err := NewService(&stubTxRunner{}, repo, time.Second)
	require.NoError(t, err)

	input := validInput()
	input.PostalCode = ""

	_, err = svc.Submit(context.Background(), 7, input)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "All fields are required.", typed.Message())
	assert.Equal(t, 0, repo.createdCount)
}

func TestSubmitRejectsMalformedCart(t *testing.T) {
	t.Parallel()

	repo := &stubRepository{products: catalog(2)}
	svc, err := NewService(&stubTxRunner{}, repo, time.Second)
	require.NoError(t, err)

	input := validInput()
	input.Cart = "2,banana"

	_, err = svc.Submit(context.Background(), 7, input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Equal(t, 0, repo.createdCount)
}

func TestSubmitFailsWhenProductsMissing(t *testing.T) {
	t.Parallel()

	repo := &stubRepository{products: catalog(2)}
	tx := &stubTxRunner{}
	svc, err := NewService(tx, repo, time.Second)
	require.NoError(t, err)

	input := validInput()
	input.Cart = "2,99"

	_, err = svc.Submit(context.Background(), 7, input)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Some products not found.", typed.Message())

	// nothing reaches the transaction when the catalog lookup comes up short
	assert.Equal(t, 0, tx.calls)
	assert.Equal(t, 0, repo.createdCount)
	assert.Empty(t, repo.savedItems)
}

func TestSubmitWrapsLookupFailure(t *testing.T) {
	t.Parallel()

	repo := &stubRepository{products: catalog(2), findErr: errors.New("connection refused")}
	svc, err := NewService(&stubTxRunner{}, repo, time.Second)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 7, validInput())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInternal, pkgerrors.As(err).Code())
}

func TestSubmitRollsBackOnItemFailure(t *testing.T) {
	t.Parallel()

	repo := &stubRepository{products: catalog(2, 4, 5), itemsErr: errors.New("disk full")}
	tx := &stubTxRunner{}
	svc, err := NewService(tx, repo, time.Second)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 7, validInput())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInternal, pkgerrors.As(err).Code())
	assert.Empty(t, repo.savedItems)
}

func TestSubmitSurfacesTxFailure(t *testing.T) {
	t.Parallel()

	repo := &stubRepository{products: catalog(2, 4, 5)}
	tx := &stubTxRunner{err: errors.New("begin failed")}
	svc, err := NewService(tx, repo, time.Second)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 7, validInput())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInternal, pkgerrors.As(err).Code())
}

func TestSubmitIsNotIdempotent(t *testing.T) {
	t.Parallel()

	repo := &stubRepository{products: catalog(2, 4, 5)}
	svc, err := NewService(&stubTxRunner{}, repo, time.Second)
	require.NoError(t, err)

	first, err := svc.Submit(context.Background(), 7, validInput())
	require.NoError(t, err)
	second, err := svc.Submit(context.Background(), 7, validInput())
	require.NoError(t, err)

	assert.NotEqual(t, first.Purchase.ID, second.Purchase.ID)
	assert.Equal(t, 2, repo.createdCount)
}
