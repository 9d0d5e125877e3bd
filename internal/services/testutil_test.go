// internal/services/testutil_test.go
package services

import (
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tradecraft/backend/internal/models"
)

// testDB opens the database named by TEST_DB_DSN and migrates the schema.
// Tests that need Postgres are skipped when the variable is unset, so the
// unit suite stays runnable without infrastructure.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping integration test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.AuditLog{},
	))

	t.Cleanup(func() {
		for _, table := range []string{"order_items", "orders", "cart_items", "products", "categories", "audit_logs", "users"} {
			db.Exec("DELETE FROM " + table)
		}
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		Email:     fmt.Sprintf("buyer-%s@example.com", uuid.New().String()[:8]),
		FirstName: "Test",
		LastName:  "Buyer",
		Role:      models.UserRoleUser,
		Status:    models.UserStatusActive,
	}
	require.NoError(t, user.SetPassword("Str0ngPass!"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()

	category := &models.Category{
		NameEN:   "Tea",
		NameZhCN: "茶",
		NameID:   "Teh",
		IsActive: true,
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, categoryID uuid.UUID, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		CategoryID:    categoryID,
		SKU:           fmt.Sprintf("SKU-%s", uuid.New().String()[:8]),
		NameEN:        "Oolong Tea",
		NameZhCN:      "乌龙茶",
		NameID:        "Teh Oolong",
		PriceUSD:      9.99,
		PriceCNY:      72,
		PriceIDR:      160000,
		PriceMYR:      47,
		StockQuantity: stock,
		Status:        models.ProductStatusActive,
	}
	if stock == 0 {
		product.Status = models.ProductStatusOutOfStock
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func shippingRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		ShippingName:    "Test Buyer",
		ShippingPhone:   "+8613800000000",
		ShippingAddress: "1 Example Road",
		ShippingCity:    "Shenzhen",
		ShippingCountry: "CN",
	}
}
