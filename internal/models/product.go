// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/tradecraft/backend/internal/apperrors"
)

type Product struct {
	BaseModel
	CategoryID uuid.UUID `json:"category_id" gorm:"type:uuid;not null;index"`
	// SKU uniqueness is enforced for live rows only, via a partial unique
	// index created in the migration step. A soft-deleted product must not
	// block its SKU from being reused.
	SKU string `json:"sku" gorm:"size:50;not null"`

	// Per-locale name and description
	NameEN        string `json:"name_en" gorm:"size:500;not null"`
	NameZhCN      string `json:"name_zh_cn" gorm:"size:500;not null"`
	NameID        string `json:"name_id" gorm:"size:500;not null"`
	DescriptionEN string `json:"description_en" gorm:"type:text"`
	DescriptionZh string `json:"description_zh_cn" gorm:"column:description_zh_cn;type:text"`
	DescriptionID string `json:"description_id" gorm:"type:text"`

	FeaturesEN   pq.StringArray `json:"features_en" gorm:"type:text[]"`
	FeaturesZhCN pq.StringArray `json:"features_zh_cn" gorm:"type:text[]"`
	FeaturesID   pq.StringArray `json:"features_id" gorm:"type:text[]"`

	// Per-currency prices
	PriceUSD float64 `json:"price_usd" gorm:"type:decimal(10,2);not null"`
	PriceCNY float64 `json:"price_cny" gorm:"type:decimal(10,2);not null"`
	PriceIDR float64 `json:"price_idr" gorm:"type:decimal(15,2);not null"`
	PriceMYR float64 `json:"price_myr" gorm:"type:decimal(10,2);not null"`
	CostCNY  float64 `json:"cost_cny" gorm:"type:decimal(10,2)"`

	StockQuantity int           `json:"stock_quantity" gorm:"default:0;not null"`
	WeightGrams   int           `json:"weight_grams"`
	Status        ProductStatus `json:"status" gorm:"type:varchar(20);default:'active';index;not null"`
	IsFeatured    bool          `json:"is_featured" gorm:"default:false;not null"`

	Images pq.StringArray `json:"images" gorm:"type:text[]"`
	Tags   pq.StringArray `json:"tags" gorm:"type:text[]"`

	SEOTitle       string `json:"seo_title" gorm:"size:200"`
	SEODescription string `json:"seo_description" gorm:"type:text"`
	SEOKeywords    string `json:"seo_keywords" gorm:"size:500"`
}

func (p *Product) Name(locale string) string {
	switch locale {
	case "zh_CN":
		return p.NameZhCN
	case "id":
		return p.NameID
	default:
		return p.NameEN
	}
}

func (p *Product) Description(locale string) string {
	switch locale {
	case "zh_CN":
		return p.DescriptionZh
	case "id":
		return p.DescriptionID
	default:
		return p.DescriptionEN
	}
}

func (p *Product) Features(locale string) []string {
	switch locale {
	case "zh_CN":
		return p.FeaturesZhCN
	case "id":
		return p.FeaturesID
	default:
		return p.FeaturesEN
	}
}

func (p *Product) Price(currency string) float64 {
	switch currency {
	case "USD":
		return p.PriceUSD
	case "IDR":
		return p.PriceIDR
	case "MYR":
		return p.PriceMYR
	default:
		return p.PriceCNY
	}
}

func (p *Product) HasStock(quantity int) bool {
	return quantity > 0 && p.StockQuantity >= quantity
}

// DecreaseStock reserves quantity units. Hitting exactly zero flips the
// product to out_of_stock.
func (p *Product) DecreaseStock(quantity int) error {
	if !p.HasStock(quantity) {
		return apperrors.InsufficientStock(p.NameEN, quantity, p.StockQuantity)
	}
	p.StockQuantity -= quantity
	if p.StockQuantity == 0 {
		p.Status = ProductStatusOutOfStock
	}
	return nil
}

// IncreaseStock returns quantity units. A product parked in out_of_stock
// comes back to active once stock is positive again; an admin-forced status
// (e.g. inactive) is left alone.
func (p *Product) IncreaseStock(quantity int) {
	p.StockQuantity += quantity
	if p.Status == ProductStatusOutOfStock && p.StockQuantity > 0 {
		p.Status = ProductStatusActive
	}
}
