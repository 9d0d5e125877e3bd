// internal/services/order_service_test.go
package services

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradecraft/backend/internal/apperrors"
	"github.com/tradecraft/backend/internal/models"
)

func TestCreateOrderFromEmptyCart(t *testing.T) {
	db := testDB(t)
	orderService := NewOrderService(db)
	user := seedUser(t, db)

	_, err := orderService.CreateOrderFromCart(user.ID, shippingRequest())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeEmptyCart))

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount, "rejected checkout must not create orders")
}

func TestCreateOrderSnapshotsCartPrice(t *testing.T) {
	db := testDB(t)
	cartService := NewCartService(db)
	orderService := NewOrderService(db)

	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 10)

	_, err := cartService.AddToCart(user.ID, &AddToCartRequest{
		ProductID: product.ID, Quantity: 2, Currency: "USD",
	})
	require.NoError(t, err)

	// Catalog price change after the item was added must not leak into the order.
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price_usd", 999.99).Error)

	order, err := orderService.CreateOrderFromCart(user.ID, shippingRequest())
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.InDelta(t, 9.99, order.Items[0].PriceSnapshot, 0.001)
	assert.InDelta(t, 19.98, order.TotalAmount, 0.001)
	assert.Equal(t, "USD", order.Currency)
	assert.Equal(t, product.SKU, order.Items[0].ProductSKUSnapshot)
	assert.Equal(t, "Oolong Tea", order.Items[0].ProductNameSnapshot)
}

func TestCreateOrderReservesStockAndClearsCart(t *testing.T) {
	db := testDB(t)
	cartService := NewCartService(db)
	orderService := NewOrderService(db)

	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 3)

	_, err := cartService.AddToCart(user.ID, &AddToCartRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)

	order, err := orderService.CreateOrderFromCart(user.ID, shippingRequest())
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Regexp(t, `^ORD-\d{14}-`, order.OrderNumber)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 0, reloaded.StockQuantity)
	assert.Equal(t, models.ProductStatusOutOfStock, reloaded.Status)

	var cartCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error)
	assert.Zero(t, cartCount, "checkout must clear the cart")
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	db := testDB(t)
	cartService := NewCartService(db)
	orderService := NewOrderService(db)

	user := seedUser(t, db)
	category := seedCategory(t, db)
	plenty := seedProduct(t, db, category.ID, 10)
	scarce := seedProduct(t, db, category.ID, 5)

	_, err := cartService.AddToCart(user.ID, &AddToCartRequest{ProductID: plenty.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = cartService.AddToCart(user.ID, &AddToCartRequest{ProductID: scarce.ID, Quantity: 5})
	require.NoError(t, err)

	// Stock drained between add and checkout.
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", scarce.ID).
		Update("stock_quantity", 1).Error)

	_, err = orderService.CreateOrderFromCart(user.ID, shippingRequest())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInsufficientStock))

	// Nothing may survive the rollback: no order, stock intact, cart intact.
	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", plenty.ID).Error)
	assert.Equal(t, 10, reloaded.StockQuantity)

	var cartCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error)
	assert.Equal(t, int64(2), cartCount)
}

func TestRepurchaseAfterCheckout(t *testing.T) {
	db := testDB(t)
	cartService := NewCartService(db)
	orderService := NewOrderService(db)

	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 10)

	_, err := cartService.AddToCart(user.ID, &AddToCartRequest{
		ProductID: product.ID, Quantity: 2, Currency: "USD",
	})
	require.NoError(t, err)

	first, err := orderService.CreateOrderFromCart(user.ID, shippingRequest())
	require.NoError(t, err)

	// Buying the same product again must work: the consumed cart line is
	// gone for real and the fresh line snapshots the current price.
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price_usd", 12.49).Error)

	item, err := cartService.AddToCart(user.ID, &AddToCartRequest{
		ProductID: product.ID, Quantity: 3, Currency: "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
	assert.InDelta(t, 12.49, item.PriceSnapshot, 0.001)

	second, err := orderService.CreateOrderFromCart(user.ID, shippingRequest())
	require.NoError(t, err)
	assert.NotEqual(t, first.OrderNumber, second.OrderNumber)
	require.Len(t, second.Items, 1)
	assert.InDelta(t, 12.49, second.Items[0].PriceSnapshot, 0.001)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 5, reloaded.StockQuantity)
}

func TestCancelOrderRestocks(t *testing.T) {
	db := testDB(t)
	cartService := NewCartService(db)
	orderService := NewOrderService(db)

	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 5)

	_, err := cartService.AddToCart(user.ID, &AddToCartRequest{ProductID: product.ID, Quantity: 5})
	require.NoError(t, err)

	order, err := orderService.CreateOrderFromCart(user.ID, shippingRequest())
	require.NoError(t, err)

	cancelled, err := orderService.CancelOrder(order.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 5, reloaded.StockQuantity, "cancel must restore every reserved unit")
	assert.Equal(t, models.ProductStatusActive, reloaded.Status)
}

func TestCancelDeliveredOrderFailsWithoutRestock(t *testing.T) {
	db := testDB(t)
	cartService := NewCartService(db)
	orderService := NewOrderService(db)

	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 5)

	_, err := cartService.AddToCart(user.ID, &AddToCartRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	order, err := orderService.CreateOrderFromCart(user.ID, shippingRequest())
	require.NoError(t, err)

	_, err = orderService.MarkAsPaid(order.ID, "txn-1")
	require.NoError(t, err)
	_, err = orderService.MarkAsShipped(order.ID, "TRACK-1")
	require.NoError(t, err)
	_, err = orderService.MarkAsDelivered(order.ID)
	require.NoError(t, err)

	_, err = orderService.CancelOrder(order.ID, user.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeIllegalStateTransition))

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 3, reloaded.StockQuantity, "refused cancel must not restock")
}

func TestCancelOtherUsersOrderIsNotFound(t *testing.T) {
	db := testDB(t)
	cartService := NewCartService(db)
	orderService := NewOrderService(db)

	owner := seedUser(t, db)
	intruder := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 5)

	_, err := cartService.AddToCart(owner.ID, &AddToCartRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	order, err := orderService.CreateOrderFromCart(owner.ID, shippingRequest())
	require.NoError(t, err)

	_, err = orderService.CancelOrder(order.ID, intruder.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestAdminStatusOverrideSkipsGuards(t *testing.T) {
	db := testDB(t)
	cartService := NewCartService(db)
	orderService := NewOrderService(db)

	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 5)

	_, err := cartService.AddToCart(user.ID, &AddToCartRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	order, err := orderService.CreateOrderFromCart(user.ID, shippingRequest())
	require.NoError(t, err)

	// pending -> delivered is not a legal guarded transition, but the
	// override allows it and leaves stock untouched.
	overridden, err := orderService.UpdateStatus(order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, overridden.Status)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 3, reloaded.StockQuantity)

	_, err = orderService.UpdateStatus(order.ID, models.OrderStatus("bogus"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidArgument))
}

func TestConcurrentCheckoutOnlyOneSucceeds(t *testing.T) {
	db := testDB(t)
	cartService := NewCartService(db)
	orderService := NewOrderService(db)

	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, 5)

	// Two buyers both want all five units; the row lock serializes them.
	buyers := []uuid.UUID{seedUser(t, db).ID, seedUser(t, db).ID}
	for _, buyerID := range buyers {
		_, err := cartService.AddToCart(buyerID, &AddToCartRequest{ProductID: product.ID, Quantity: 5})
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(buyers))
	for i, buyerID := range buyers {
		wg.Add(1)
		go func(idx int, id uuid.UUID) {
			defer wg.Done()
			_, errs[idx] = orderService.CreateOrderFromCart(id, shippingRequest())
		}(i, buyerID)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.True(t, apperrors.Is(err, apperrors.CodeInsufficientStock))
		}
	}
	assert.Equal(t, 1, successes, "exactly one checkout may win the last units")

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 0, reloaded.StockQuantity, "stock must never go negative")
}
