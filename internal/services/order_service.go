// internal/services/order_service.go
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

type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

type CreateOrderRequest struct {
	ShippingName       string               `json:"shipping_name" validate:"required,max=100"`
	ShippingPhone      string               `json:"shipping_phone" validate:"required,max=20"`
	ShippingAddress    string               `json:"shipping_address" validate:"required"`
	ShippingCity       string               `json:"shipping_city" validate:"required,max=100"`
	ShippingState      string               `json:"shipping_state,omitempty" validate:"omitempty,max=100"`
	ShippingCountry    string               `json:"shipping_country" validate:"required,max=100"`
	ShippingPostalCode string               `json:"shipping_postal_code,omitempty" validate:"omitempty,max=20"`
	PaymentMethod      models.PaymentMethod `json:"payment_method,omitempty"`
	ShippingFee        float64              `json:"shipping_fee,omitempty" validate:"omitempty,gte=0"`
	Notes              string               `json:"notes,omitempty"`
}

type OrderSearchParams struct {
	utils.PaginationParams
	Status *models.OrderStatus `json:"status,omitempty"`
}

// CreateOrderFromCart turns the user's cart into an order in one transaction:
// each product row is locked, stock is re-validated against live quantities
// and decremented, item snapshots are taken, and the cart is emptied. Any
// failure rolls the whole thing back, so no partial reservation survives.
func (s *OrderService) CreateOrderFromCart(userID uuid.UUID, req *CreateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidArgument(fmt.Sprintf("validation failed: %v", err))
	}

	if req.PaymentMethod != "" && !req.PaymentMethod.Valid() {
		return nil, apperrors.InvalidArgument(fmt.Sprintf("invalid payment method: %s", req.PaymentMethod))
	}

	orderNumber, err := utils.GenerateOrderNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order number: %w", err)
	}

	var order *models.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		cartItems, products, err := lockCartProducts(tx, userID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return apperrors.EmptyCart()
		}

		order = &models.Order{
			OrderNumber:        orderNumber,
			UserID:             userID,
			Status:             models.OrderStatusPending,
			Currency:           cartItems[0].CurrencySnapshot,
			ShippingFee:        req.ShippingFee,
			ShippingName:       req.ShippingName,
			ShippingPhone:      req.ShippingPhone,
			ShippingAddress:    req.ShippingAddress,
			ShippingCity:       req.ShippingCity,
			ShippingState:      req.ShippingState,
			ShippingCountry:    req.ShippingCountry,
			ShippingPostalCode: req.ShippingPostalCode,
			PaymentMethod:      req.PaymentMethod,
			PaymentStatus:      models.PaymentStatusPending,
			Notes:              req.Notes,
		}

		for _, cartItem := range cartItems {
			product := products[cartItem.ProductID]

			// Unit price comes from the cart snapshot; name and SKU are
			// captured now, from the live product row.
			if err := product.DecreaseStock(cartItem.Quantity); err != nil {
				return err
			}
			if err := persistStock(tx, product); err != nil {
				return err
			}

			order.Items = append(order.Items, models.OrderItem{
				ProductID:           product.ID,
				Quantity:            cartItem.Quantity,
				PriceSnapshot:       cartItem.PriceSnapshot,
				ProductNameSnapshot: product.NameEN,
				ProductSKUSnapshot:  product.SKU,
			})
		}

		order.TotalAmount = order.CalculateTotal()

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		if err := tx.Where("user_id = ?", userID).
			Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      userID,
		"total":        order.TotalAmount,
		"currency":     order.Currency,
	}).Info("Order created")

	return order, nil
}

func (s *OrderService) GetOrder(orderID, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (s *OrderService) GetOrderByNumber(orderNumber string, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").
		Where("order_number = ? AND user_id = ?", orderNumber, userID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (s *OrderService) ListUserOrders(userID uuid.UUID, params OrderSearchParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Where("user_id = ?", userID)
	return s.listOrders(query, params)
}

// ListOrders is the unscoped admin view.
func (s *OrderService) ListOrders(params OrderSearchParams) ([]models.Order, int64, error) {
	return s.listOrders(s.db.Model(&models.Order{}), params)
}

func (s *OrderService) listOrders(query *gorm.DB, params OrderSearchParams) ([]models.Order, int64, error) {
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Search != "" {
		query = query.Where("order_number ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "total_amount", "status", "order_number"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var orders []models.Order
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

// GetOrderAdmin fetches any user's order.
func (s *OrderService) GetOrderAdmin(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// CancelOrder cancels the user's order and returns every reserved unit to
// stock, the exact mirror of the creation decrement. Delivered and already
// cancelled orders refuse the transition, and refusal restores nothing.
func (s *OrderService) CancelOrder(orderID, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").
			Where("id = ? AND user_id = ?", orderID, userID).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("order")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := order.Cancel(); err != nil {
			return err
		}

		for i := range order.Items {
			item := &order.Items[i]

			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// Product removed from the catalog since purchase;
					// nothing to restock for this line.
					continue
				}
				return fmt.Errorf("database error: %w", err)
			}

			product.IncreaseStock(item.Quantity)
			if err := persistStock(tx, &product); err != nil {
				return err
			}
		}

		if err := tx.Model(&order).Update("status", order.Status).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id":     orderID,
		"order_number": order.OrderNumber,
	}).Info("Order cancelled")

	return &order, nil
}

// MarkAsPaid records a confirmed payment and moves the order to processing.
func (s *OrderService) MarkAsPaid(orderID uuid.UUID, transactionID string) (*models.Order, error) {
	return s.transition(orderID, func(order *models.Order) error {
		return order.MarkAsPaid(transactionID)
	}, "payment_status", "payment_transaction_id", "paid_at")
}

func (s *OrderService) MarkAsShipped(orderID uuid.UUID, trackingNumber string) (*models.Order, error) {
	if trackingNumber == "" {
		return nil, apperrors.InvalidArgument("tracking number is required")
	}
	return s.transition(orderID, func(order *models.Order) error {
		return order.MarkAsShipped(trackingNumber)
	}, "tracking_number", "shipped_at")
}

func (s *OrderService) MarkAsDelivered(orderID uuid.UUID) (*models.Order, error) {
	return s.transition(orderID, func(order *models.Order) error {
		return order.MarkAsDelivered()
	}, "delivered_at")
}

func (s *OrderService) transition(orderID uuid.UUID, apply func(*models.Order) error, extraColumns ...string) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("order")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := apply(&order); err != nil {
			return err
		}

		columns := append([]string{"status"}, extraColumns...)
		if err := tx.Model(&order).Select(columns).Updates(&order).Error; err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id": orderID,
		"status":   order.Status,
	}).Info("Order status changed")

	return &order, nil
}

// UpdateStatus is the administrative override used for support corrections.
// It skips the guarded transitions and never touches stock or the payment
// and fulfillment timestamps.
func (s *OrderService) UpdateStatus(orderID uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, apperrors.InvalidArgument(fmt.Sprintf("invalid order status: %s", status))
	}

	order, err := s.GetOrderAdmin(orderID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(order).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order.Status = status
	logrus.WithFields(logrus.Fields{
		"order_id": orderID,
		"status":   status,
	}).Warn("Order status overridden")

	return order, nil
}

type OrderStats struct {
	TotalOrders     int64   `json:"total_orders"`
	PendingOrders   int64   `json:"pending_orders"`
	DeliveredOrders int64   `json:"delivered_orders"`
	CancelledOrders int64   `json:"cancelled_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
}

// GetOrderStats aggregates counts for the admin dashboard. Revenue counts
// paid orders only.
func (s *OrderService) GetOrderStats() (*OrderStats, error) {
	stats := &OrderStats{}

	if err := s.db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if err := s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending orders: %w", err)
	}
	if err := s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusDelivered).
		Count(&stats.DeliveredOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count delivered orders: %w", err)
	}
	if err := s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusCancelled).
		Count(&stats.CancelledOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count cancelled orders: %w", err)
	}

	row := s.db.Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentStatusPaid).
		Select("COALESCE(SUM(total_amount), 0)").Row()
	if err := row.Scan(&stats.TotalRevenue); err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return stats, nil
}
