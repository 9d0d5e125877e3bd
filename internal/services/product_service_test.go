// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradecraft/backend/internal/apperrors"
	"github.com/tradecraft/backend/internal/models"
)

func TestCreateProductDuplicateSKU(t *testing.T) {
	db := testDB(t)
	productService := NewProductService(db)
	category := seedCategory(t, db)

	req := &CreateProductRequest{
		CategoryID:    category.ID,
		SKU:           "DUP-001",
		NameEN:        "Widget",
		NameZhCN:      "小部件",
		NameID:        "Widget",
		PriceUSD:      1,
		PriceCNY:      7,
		PriceIDR:      16000,
		PriceMYR:      5,
		StockQuantity: 10,
	}

	_, err := productService.CreateProduct(req)
	require.NoError(t, err)

	_, err = productService.CreateProduct(req)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
}

func TestCreateProductReusesDeletedSKU(t *testing.T) {
	db := testDB(t)
	productService := NewProductService(db)
	category := seedCategory(t, db)

	req := &CreateProductRequest{
		CategoryID:    category.ID,
		SKU:           "REUSE-001",
		NameEN:        "Widget",
		NameZhCN:      "小部件",
		NameID:        "Widget",
		PriceUSD:      1,
		PriceCNY:      7,
		PriceIDR:      16000,
		PriceMYR:      5,
		StockQuantity: 10,
	}

	old, err := productService.CreateProduct(req)
	require.NoError(t, err)
	require.NoError(t, productService.DeleteProduct(old.ID))

	// A soft-deleted product releases its SKU for a replacement.
	replacement, err := productService.CreateProduct(req)
	require.NoError(t, err)
	assert.NotEqual(t, old.ID, replacement.ID)

	found, err := productService.GetProductBySKU("REUSE-001")
	require.NoError(t, err)
	assert.Equal(t, replacement.ID, found.ID)
}

func TestCreateProductUnknownCategory(t *testing.T) {
	db := testDB(t)
	productService := NewProductService(db)
	_ = seedCategory(t, db)

	req := &CreateProductRequest{
		CategoryID: uuid.New(),
		SKU:        "NOCAT-001",
		NameEN:     "Widget",
		NameZhCN:   "小部件",
		NameID:     "Widget",
		PriceUSD:   1, PriceCNY: 7, PriceIDR: 16000, PriceMYR: 5,
	}

	_, err := productService.CreateProduct(req)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestAdjustStockDecrease(t *testing.T) {
	db := testDB(t)
	productService := NewProductService(db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 10)

	updated, err := productService.AdjustStock(product.ID, -4)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.StockQuantity)
	assert.Equal(t, models.ProductStatusActive, updated.Status)

	updated, err = productService.AdjustStock(product.ID, -6)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.StockQuantity)
	assert.Equal(t, models.ProductStatusOutOfStock, updated.Status)
}

func TestAdjustStockBelowZeroFails(t *testing.T) {
	db := testDB(t)
	productService := NewProductService(db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 3)

	_, err := productService.AdjustStock(product.ID, -4)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInsufficientStock))

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 3, reloaded.StockQuantity, "failed adjustment must not mutate")
}

func TestAdjustStockIncreaseReactivates(t *testing.T) {
	db := testDB(t)
	productService := NewProductService(db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 0)

	updated, err := productService.AdjustStock(product.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.StockQuantity)
	assert.Equal(t, models.ProductStatusActive, updated.Status)
}

func TestAdjustStockZeroDelta(t *testing.T) {
	db := testDB(t)
	productService := NewProductService(db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 5)

	_, err := productService.AdjustStock(product.ID, 0)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidArgument))
}

func TestSetStatusDoesNotReconcileStock(t *testing.T) {
	db := testDB(t)
	productService := NewProductService(db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 5)

	// Forcing out_of_stock with units on hand is allowed and sticky.
	updated, err := productService.SetStatus(product.ID, models.ProductStatusOutOfStock)
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusOutOfStock, updated.Status)
	assert.Equal(t, 5, updated.StockQuantity)

	_, err = productService.SetStatus(product.ID, models.ProductStatus("bogus"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidArgument))
}

func TestSearchProductsDefaultsNewestFirst(t *testing.T) {
	db := testDB(t)
	productService := NewProductService(db)
	category := seedCategory(t, db)
	older := seedProduct(t, db, category.ID, 5)
	newer := seedProduct(t, db, category.ID, 5)

	// Zero-value params come from service-level callers; ordering must
	// still default to created_at descending.
	products, _, err := productService.SearchProducts(ProductSearchParams{})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, newer.ID, products[0].ID)
	assert.Equal(t, older.ID, products[1].ID)
}

func TestSearchProductsHidesInactiveByDefault(t *testing.T) {
	db := testDB(t)
	productService := NewProductService(db)
	category := seedCategory(t, db)
	visible := seedProduct(t, db, category.ID, 5)
	hidden := seedProduct(t, db, category.ID, 5)

	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", hidden.ID).
		Update("status", models.ProductStatusInactive).Error)

	products, total, err := productService.SearchProducts(ProductSearchParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, visible.ID, products[0].ID)

	// Explicit status filter brings the inactive product back.
	inactive := models.ProductStatusInactive
	products, total, err = productService.SearchProducts(ProductSearchParams{Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, hidden.ID, products[0].ID)
}
