// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tradecraft/backend/internal/apperrors"
	"github.com/tradecraft/backend/internal/models"
	"github.com/tradecraft/backend/internal/utils"
)

type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
	Currency  string    `json:"currency,omitempty" validate:"omitempty,currency"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type CartSummary struct {
	Items     []models.CartItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Subtotal  float64           `json:"subtotal"`
	Currency  string            `json:"currency"`
}

func (s *CartService) GetUserCart(userID uuid.UUID) (*CartSummary, error) {
	var items []models.CartItem
	if err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}

	summary := &CartSummary{
		Items:    items,
		Currency: models.DefaultCurrency,
	}
	for _, item := range items {
		summary.ItemCount += item.Quantity
		summary.Subtotal += item.Subtotal()
		summary.Currency = item.CurrencySnapshot
	}

	return summary, nil
}

// AddToCart appends a line, or merges quantities when the product is already
// in the cart. The merged total is validated against current stock; price and
// currency are snapshotted from the catalog at add time and an existing
// line's snapshot is never rewritten by a merge.
func (s *CartService) AddToCart(userID uuid.UUID, req *AddToCartRequest) (*models.CartItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidArgument(fmt.Sprintf("validation failed: %v", err))
	}
	if req.Quantity <= 0 {
		return nil, apperrors.InvalidArgument("quantity must be greater than 0")
	}

	currency := req.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}

	var item models.CartItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("product")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if product.Status == models.ProductStatusInactive {
			return apperrors.InvalidArgument("product is not available")
		}

		var existing models.CartItem
		err := tx.Where("user_id = ? AND product_id = ?", userID, req.ProductID).
			First(&existing).Error

		switch {
		case err == nil:
			merged := existing.Quantity + req.Quantity
			if !product.HasStock(merged) {
				return apperrors.InsufficientStock(product.NameEN, merged, product.StockQuantity)
			}
			if err := tx.Model(&existing).Update("quantity", merged).Error; err != nil {
				return fmt.Errorf("failed to update cart item: %w", err)
			}
			existing.Quantity = merged
			item = existing
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			if !product.HasStock(req.Quantity) {
				return apperrors.InsufficientStock(product.NameEN, req.Quantity, product.StockQuantity)
			}
			item = models.CartItem{
				UserID:           userID,
				ProductID:        req.ProductID,
				Quantity:         req.Quantity,
				PriceSnapshot:    product.Price(currency),
				CurrencySnapshot: currency,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create cart item: %w", err)
			}
			return nil

		default:
			return fmt.Errorf("database error: %w", err)
		}
	})

	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"product_id": req.ProductID,
		"quantity":   item.Quantity,
	}).Info("Cart item added")

	return &item, nil
}

// UpdateQuantity replaces a line's quantity. Ownership is part of the lookup,
// so another user's item id reads as not found.
func (s *CartService) UpdateQuantity(userID, itemID uuid.UUID, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, apperrors.InvalidArgument("quantity must be greater than 0")
	}

	var item models.CartItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", itemID, userID).
			First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("cart item")
			}
			return fmt.Errorf("database error: %w", err)
		}

		var product models.Product
		if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("product")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !product.HasStock(quantity) {
			return apperrors.InsufficientStock(product.NameEN, quantity, product.StockQuantity)
		}

		if err := tx.Model(&item).Update("quantity", quantity).Error; err != nil {
			return fmt.Errorf("failed to update cart item: %w", err)
		}
		item.Quantity = quantity
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (s *CartService) RemoveFromCart(userID, itemID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("cart item")
	}
	return nil
}

func (s *CartService) ClearCart(userID uuid.UUID) error {
	if err := s.db.Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// lockCartProducts loads the cart lines and their products under row locks,
// in a stable product order so concurrent checkouts cannot deadlock.
func lockCartProducts(tx *gorm.DB, userID uuid.UUID) ([]models.CartItem, map[uuid.UUID]*models.Product, error) {
	var items []models.CartItem
	if err := tx.Where("user_id = ?", userID).
		Order("product_id ASC").
		Find(&items).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to fetch cart: %w", err)
	}

	products := make(map[uuid.UUID]*models.Product, len(items))
	for _, item := range items {
		var product models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, apperrors.NotFound("product")
			}
			return nil, nil, fmt.Errorf("database error: %w", err)
		}
		products[item.ProductID] = &product
	}

	return items, products, nil
}
