package products

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:products_%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gdb.Exec(`CREATE TABLE products (
		product_id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		price NUMERIC NOT NULL,
		created_at DATETIME
	)`).Error)

	return gdb
}

func seed(t *testing.T, gdb *gorm.DB, name, price string) models.Product {
	t.Helper()

	product := models.Product{
		Name:      name,
		Price:     decimal.RequireFromString(price),
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, gdb.Create(&product).Error)
	return product
}

func TestRepositoryFindByID(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRepository(gdb)

	hat := seed(t, gdb, "Hat", "19.99")

	found, err := repo.FindByID(context.Background(), hat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hat", found.Name)
	assert.True(t, found.Price.Equal(decimal.RequireFromString("19.99")))
}

func TestRepositoryFindByIDMissing(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRepository(gdb)

	_, err := repo.FindByID(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, db.IsNotFound(err))
}

func TestRepositoryListOrdersByID(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRepository(gdb)

	seed(t, gdb, "Hat", "19.99")
	seed(t, gdb, "Mug", "9.49")
	seed(t, gdb, "Shirt", "24.99")

	catalog, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 3)
	assert.True(t, catalog[0].ID < catalog[1].ID)
	assert.True(t, catalog[1].ID < catalog[2].ID)
}

func TestRepositoryListEmpty(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRepository(gdb)

	catalog, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, catalog)
}
