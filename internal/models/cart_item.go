// internal/models/cart_item.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem holds one (user, product) line. Price and currency are frozen at
// add time; later catalog price changes never touch existing cart lines.
//
// Cart lines are ephemeral: removal, clear and checkout delete the row for
// real. No DeletedAt here, or a removed line would keep occupying the
// (user_id, product_id) unique slot and block repurchasing.
type CartItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID           uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	ProductID        uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	Quantity         int       `json:"quantity" gorm:"not null"`
	PriceSnapshot    float64   `json:"price_snapshot" gorm:"type:decimal(15,2);not null"`
	CurrencySnapshot string    `json:"currency_snapshot" gorm:"size:3;not null"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}

func (ci *CartItem) Subtotal() float64 {
	return ci.PriceSnapshot * float64(ci.Quantity)
}
