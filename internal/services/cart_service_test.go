// internal/services/cart_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradecraft/backend/internal/apperrors"
	"github.com/tradecraft/backend/internal/models"
)

func TestAddToCartSnapshotsPrice(t *testing.T) {
	db := testDB(t)
	cartService := NewCartService(db)

	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 10)

	item, err := cartService.AddToCart(user.ID, &AddToCartRequest{
		ProductID: product.ID, Quantity: 2, Currency: "USD",
	})
	require.NoError(t, err)

	assert.InDelta(t, 9.99, item.PriceSnapshot, 0.001)
	assert.Equal(t, "USD", item.CurrencySnapshot)
	assert.Equal(t, 2, item.Quantity)
}

func TestAddToCartDefaultsCurrency(t *testing.T) {
	db := testDB(t)
	cartService := NewCartService(db)

	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 10)

	item, err := cartService.AddToCart(user.ID, &AddToCartRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	assert.Equal(t, models.DefaultCurrency, item.CurrencySnapshot)
	assert.InDelta(t, 72.0, item.PriceSnapshot, 0.001)
}

func TestAddToCartMergeValidatesCombinedQuantity(t *testing.T) {
	db := testDB(t)
	cartService := NewCartService(db)

	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 5)

	_, err := cartService.AddToCart(user.ID, &AddToCartRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)

	// 3 already in cart + 3 more would exceed the 5 available.
	_, err = cartService.AddToCart(user.ID, &AddToCartRequest{ProductID: product.ID, Quantity: 3})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInsufficientStock))

	// A merge within stock succeeds and keeps one line.
	item, err := cartService.AddToCart(user.ID, &AddToCartRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	var lineCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&lineCount).Error)
	assert.Equal(t, int64(1), lineCount)
}

func TestAddToCartMergeKeepsOriginalSnapshot(t *testing.T) {
	db := testDB(t)
	cartService := NewCartService(db)

	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 10)

	first, err := cartService.AddToCart(user.ID, &AddToCartRequest{
		ProductID: product.ID, Quantity: 1, Currency: "USD",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price_usd", 111.11).Error)

	merged, err := cartService.AddToCart(user.ID, &AddToCartRequest{
		ProductID: product.ID, Quantity: 1, Currency: "USD",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, merged.ID)
	assert.InDelta(t, 9.99, merged.PriceSnapshot, 0.001, "merge must not rewrite the original snapshot")
}

func TestAddToCartRejectsInactiveProduct(t *testing.T) {
	db := testDB(t)
	cartService := NewCartService(db)

	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 10)

	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("status", models.ProductStatusInactive).Error)

	_, err := cartService.AddToCart(user.ID, &AddToCartRequest{ProductID: product.ID, Quantity: 1})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidArgument))
}

func TestUpdateQuantityChecksStock(t *testing.T) {
	db := testDB(t)
	cartService := NewCartService(db)

	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 5)

	item, err := cartService.AddToCart(user.ID, &AddToCartRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	updated, err := cartService.UpdateQuantity(user.ID, item.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)

	_, err = cartService.UpdateQuantity(user.ID, item.ID, 6)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInsufficientStock))

	_, err = cartService.UpdateQuantity(user.ID, item.ID, 0)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidArgument))
}

func TestCartOwnershipReadsAsNotFound(t *testing.T) {
	db := testDB(t)
	cartService := NewCartService(db)

	owner := seedUser(t, db)
	intruder := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 5)

	item, err := cartService.AddToCart(owner.ID, &AddToCartRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	_, err = cartService.UpdateQuantity(intruder.ID, item.ID, 2)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))

	err = cartService.RemoveFromCart(intruder.ID, item.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))

	// The owner's line is untouched.
	summary, err := cartService.GetUserCart(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ItemCount)
}

func TestReAddProductAfterRemove(t *testing.T) {
	db := testDB(t)
	cartService := NewCartService(db)

	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 10)

	item, err := cartService.AddToCart(user.ID, &AddToCartRequest{
		ProductID: product.ID, Quantity: 2, Currency: "USD",
	})
	require.NoError(t, err)
	require.NoError(t, cartService.RemoveFromCart(user.ID, item.ID))

	// The removed line must fully release its (user, product) slot and a new
	// add must snapshot the current catalog price, not the old one.
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price_usd", 14.99).Error)

	readded, err := cartService.AddToCart(user.ID, &AddToCartRequest{
		ProductID: product.ID, Quantity: 1, Currency: "USD",
	})
	require.NoError(t, err)
	assert.NotEqual(t, item.ID, readded.ID)
	assert.Equal(t, 1, readded.Quantity)
	assert.InDelta(t, 14.99, readded.PriceSnapshot, 0.001)
}

func TestReAddProductAfterClear(t *testing.T) {
	db := testDB(t)
	cartService := NewCartService(db)

	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 10)

	_, err := cartService.AddToCart(user.ID, &AddToCartRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)
	require.NoError(t, cartService.ClearCart(user.ID))

	item, err := cartService.AddToCart(user.ID, &AddToCartRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity, "cleared line must not merge into the new one")

	summary, err := cartService.GetUserCart(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.ItemCount)
}

func TestClearCart(t *testing.T) {
	db := testDB(t)
	cartService := NewCartService(db)

	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 5)

	_, err := cartService.AddToCart(user.ID, &AddToCartRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, cartService.ClearCart(user.ID))

	summary, err := cartService.GetUserCart(user.ID)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
	assert.Zero(t, summary.Subtotal)
}
