// internal/models/order.go
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tradecraft/backend/internal/apperrors"
)

// Order is the immutable record of a checkout. Shipping address and item
// prices are denormalized snapshots so the order survives later edits to
// addresses and catalog rows.
type Order struct {
	BaseModel
	OrderNumber string    `json:"order_number" gorm:"uniqueIndex;size:50;not null"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`

	Status      OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending';index;not null"`
	TotalAmount float64     `json:"total_amount" gorm:"type:decimal(15,2);not null"`
	Currency    string      `json:"currency" gorm:"size:3;not null"`
	ShippingFee float64     `json:"shipping_fee" gorm:"type:decimal(15,2)"`
	TaxAmount   float64     `json:"tax_amount" gorm:"type:decimal(15,2)"`

	// Shipping address snapshot
	ShippingName       string `json:"shipping_name" gorm:"size:100;not null"`
	ShippingPhone      string `json:"shipping_phone" gorm:"size:20;not null"`
	ShippingAddress    string `json:"shipping_address" gorm:"type:text;not null"`
	ShippingCity       string `json:"shipping_city" gorm:"size:100;not null"`
	ShippingState      string `json:"shipping_state" gorm:"size:100"`
	ShippingCountry    string `json:"shipping_country" gorm:"size:100;not null"`
	ShippingPostalCode string `json:"shipping_postal_code" gorm:"size:20"`

	// Payment
	PaymentMethod        PaymentMethod `json:"payment_method" gorm:"type:varchar(20)"`
	PaymentStatus        PaymentStatus `json:"payment_status" gorm:"type:varchar(20);default:'pending';not null"`
	PaymentTransactionID string        `json:"payment_transaction_id" gorm:"size:100"`
	PaidAt               *time.Time    `json:"paid_at"`

	// Fulfillment
	TrackingNumber string     `json:"tracking_number" gorm:"size:100"`
	ShippedAt      *time.Time `json:"shipped_at"`
	DeliveredAt    *time.Time `json:"delivered_at"`

	Notes    string `json:"notes" gorm:"type:text"`
	Metadata JSONB  `json:"metadata,omitempty" gorm:"type:jsonb"`

	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem snapshots product name, SKU and unit price so historical orders
// stay intact when the catalog changes. ProductID is kept for traceability
// and for the cancel restock path.
type OrderItem struct {
	BaseModel
	OrderID             uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID           uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Quantity            int       `json:"quantity" gorm:"not null"`
	PriceSnapshot       float64   `json:"price_snapshot" gorm:"type:decimal(15,2);not null"`
	ProductNameSnapshot string    `json:"product_name_snapshot" gorm:"size:500;not null"`
	ProductSKUSnapshot  string    `json:"product_sku_snapshot" gorm:"size:50"`
}

func (oi *OrderItem) Subtotal() float64 {
	return oi.PriceSnapshot * float64(oi.Quantity)
}

// CalculateTotal sums item subtotals plus shipping and tax. Called once at
// creation; the stored total is never recomputed afterwards.
func (o *Order) CalculateTotal() float64 {
	var itemsTotal float64
	for i := range o.Items {
		itemsTotal += o.Items[i].Subtotal()
	}
	return itemsTotal + o.ShippingFee + o.TaxAmount
}

// MarkAsPaid moves pending -> processing and records the payment.
func (o *Order) MarkAsPaid(transactionID string) error {
	if o.Status != OrderStatusPending {
		return apperrors.IllegalStateTransition(fmt.Sprintf("cannot mark %s order as paid", o.Status))
	}
	now := time.Now()
	o.Status = OrderStatusProcessing
	o.PaymentStatus = PaymentStatusPaid
	o.PaymentTransactionID = transactionID
	o.PaidAt = &now
	return nil
}

// MarkAsShipped moves processing -> shipped and records the tracking number.
func (o *Order) MarkAsShipped(trackingNumber string) error {
	if o.Status != OrderStatusProcessing {
		return apperrors.IllegalStateTransition(fmt.Sprintf("cannot ship %s order", o.Status))
	}
	now := time.Now()
	o.Status = OrderStatusShipped
	o.TrackingNumber = trackingNumber
	o.ShippedAt = &now
	return nil
}

// MarkAsDelivered moves shipped -> delivered.
func (o *Order) MarkAsDelivered() error {
	if o.Status != OrderStatusShipped {
		return apperrors.IllegalStateTransition(fmt.Sprintf("cannot deliver %s order", o.Status))
	}
	now := time.Now()
	o.Status = OrderStatusDelivered
	o.DeliveredAt = &now
	return nil
}

// Cancel is allowed from any state except delivered. The stock restore side
// effect lives in the order service, mirroring the creation decrement.
func (o *Order) Cancel() error {
	if o.Status == OrderStatusDelivered {
		return apperrors.IllegalStateTransition("cannot cancel delivered order")
	}
	if o.Status == OrderStatusCancelled {
		return apperrors.IllegalStateTransition("order is already cancelled")
	}
	o.Status = OrderStatusCancelled
	return nil
}
