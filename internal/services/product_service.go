// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tradecraft/backend/internal/apperrors"
	"github.com/tradecraft/backend/internal/models"
	"github.com/tradecraft/backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

type CreateProductRequest struct {
	CategoryID    uuid.UUID `json:"category_id" validate:"required"`
	SKU           string    `json:"sku" validate:"required,max=50"`
	NameEN        string    `json:"name_en" validate:"required,max=500"`
	NameZhCN      string    `json:"name_zh_cn" validate:"required,max=500"`
	NameID        string    `json:"name_id" validate:"required,max=500"`
	DescriptionEN string    `json:"description_en,omitempty"`
	DescriptionZh string    `json:"description_zh_cn,omitempty"`
	DescriptionID string    `json:"description_id,omitempty"`
	FeaturesEN    []string  `json:"features_en,omitempty"`
	FeaturesZhCN  []string  `json:"features_zh_cn,omitempty"`
	FeaturesID    []string  `json:"features_id,omitempty"`
	PriceUSD      float64   `json:"price_usd" validate:"required,gt=0"`
	PriceCNY      float64   `json:"price_cny" validate:"required,gt=0"`
	PriceIDR      float64   `json:"price_idr" validate:"required,gt=0"`
	PriceMYR      float64   `json:"price_myr" validate:"required,gt=0"`
	CostCNY       float64   `json:"cost_cny,omitempty" validate:"omitempty,gte=0"`
	StockQuantity int       `json:"stock_quantity" validate:"gte=0"`
	WeightGrams   int       `json:"weight_grams,omitempty" validate:"omitempty,gte=0"`
	IsFeatured    bool      `json:"is_featured,omitempty"`
	Images        []string  `json:"images,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	SEOTitle      string    `json:"seo_title,omitempty" validate:"omitempty,max=200"`
	SEODesc       string    `json:"seo_description,omitempty"`
	SEOKeywords   string    `json:"seo_keywords,omitempty" validate:"omitempty,max=500"`
}

type UpdateProductRequest struct {
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	NameEN        *string    `json:"name_en,omitempty" validate:"omitempty,max=500"`
	NameZhCN      *string    `json:"name_zh_cn,omitempty" validate:"omitempty,max=500"`
	NameID        *string    `json:"name_id,omitempty" validate:"omitempty,max=500"`
	DescriptionEN *string    `json:"description_en,omitempty"`
	DescriptionZh *string    `json:"description_zh_cn,omitempty"`
	DescriptionID *string    `json:"description_id,omitempty"`
	FeaturesEN    []string   `json:"features_en,omitempty"`
	FeaturesZhCN  []string   `json:"features_zh_cn,omitempty"`
	FeaturesID    []string   `json:"features_id,omitempty"`
	PriceUSD      *float64   `json:"price_usd,omitempty" validate:"omitempty,gt=0"`
	PriceCNY      *float64   `json:"price_cny,omitempty" validate:"omitempty,gt=0"`
	PriceIDR      *float64   `json:"price_idr,omitempty" validate:"omitempty,gt=0"`
	PriceMYR      *float64   `json:"price_myr,omitempty" validate:"omitempty,gt=0"`
	WeightGrams   *int       `json:"weight_grams,omitempty" validate:"omitempty,gte=0"`
	IsFeatured    *bool      `json:"is_featured,omitempty"`
	Images        []string   `json:"images,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	SEOTitle      *string    `json:"seo_title,omitempty" validate:"omitempty,max=200"`
	SEODesc       *string    `json:"seo_description,omitempty"`
	SEOKeywords   *string    `json:"seo_keywords,omitempty" validate:"omitempty,max=500"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	CategoryID *uuid.UUID            `json:"category_id,omitempty"`
	Status     *models.ProductStatus `json:"status,omitempty"`
	Featured   *bool                 `json:"featured,omitempty"`
	PriceMin   *float64              `json:"price_min,omitempty"`
	PriceMax   *float64              `json:"price_max,omitempty"`
	Tags       []string              `json:"tags,omitempty"`
	InStock    *bool                 `json:"in_stock,omitempty"`
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidArgument(fmt.Sprintf("validation failed: %v", err))
	}

	var category models.Category
	if err := s.db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("category")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.Product{}).Where("sku = ?", req.SKU).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, apperrors.Conflict(fmt.Sprintf("product with SKU %s already exists", req.SKU))
	}

	product := &models.Product{
		CategoryID:     req.CategoryID,
		SKU:            req.SKU,
		NameEN:         req.NameEN,
		NameZhCN:       req.NameZhCN,
		NameID:         req.NameID,
		DescriptionEN:  req.DescriptionEN,
		DescriptionZh:  req.DescriptionZh,
		DescriptionID:  req.DescriptionID,
		FeaturesEN:     req.FeaturesEN,
		FeaturesZhCN:   req.FeaturesZhCN,
		FeaturesID:     req.FeaturesID,
		PriceUSD:       req.PriceUSD,
		PriceCNY:       req.PriceCNY,
		PriceIDR:       req.PriceIDR,
		PriceMYR:       req.PriceMYR,
		CostCNY:        req.CostCNY,
		StockQuantity:  req.StockQuantity,
		WeightGrams:    req.WeightGrams,
		Status:         models.ProductStatusActive,
		IsFeatured:     req.IsFeatured,
		Images:         req.Images,
		Tags:           req.Tags,
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODesc,
		SEOKeywords:    req.SEOKeywords,
	}

	if req.StockQuantity == 0 {
		product.Status = models.ProductStatusOutOfStock
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logrus.WithFields(logrus.Fields{"product_id": product.ID, "sku": product.SKU}).Info("Product created")
	return product, nil
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) GetProductBySKU(sku string) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidArgument(fmt.Sprintf("validation failed: %v", err))
	}

	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.NameEN != nil {
		updates["name_en"] = *req.NameEN
	}
	if req.NameZhCN != nil {
		updates["name_zh_cn"] = *req.NameZhCN
	}
	if req.NameID != nil {
		updates["name_id"] = *req.NameID
	}
	if req.DescriptionEN != nil {
		updates["description_en"] = *req.DescriptionEN
	}
	if req.DescriptionZh != nil {
		updates["description_zh_cn"] = *req.DescriptionZh
	}
	if req.DescriptionID != nil {
		updates["description_id"] = *req.DescriptionID
	}
	if req.FeaturesEN != nil {
		updates["features_en"] = pqArray(req.FeaturesEN)
	}
	if req.FeaturesZhCN != nil {
		updates["features_zh_cn"] = pqArray(req.FeaturesZhCN)
	}
	if req.FeaturesID != nil {
		updates["features_id"] = pqArray(req.FeaturesID)
	}
	if req.PriceUSD != nil {
		updates["price_usd"] = *req.PriceUSD
	}
	if req.PriceCNY != nil {
		updates["price_cny"] = *req.PriceCNY
	}
	if req.PriceIDR != nil {
		updates["price_idr"] = *req.PriceIDR
	}
	if req.PriceMYR != nil {
		updates["price_myr"] = *req.PriceMYR
	}
	if req.WeightGrams != nil {
		updates["weight_grams"] = *req.WeightGrams
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.Images != nil {
		updates["images"] = pqArray(req.Images)
	}
	if req.Tags != nil {
		updates["tags"] = pqArray(req.Tags)
	}
	if req.SEOTitle != nil {
		updates["seo_title"] = *req.SEOTitle
	}
	if req.SEODesc != nil {
		updates["seo_description"] = *req.SEODesc
	}
	if req.SEOKeywords != nil {
		updates["seo_keywords"] = *req.SEOKeywords
	}

	if len(updates) > 0 {
		if err := s.db.Model(product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	return s.GetProduct(id)
}

func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	logrus.WithField("product_id", id).Info("Product deleted")
	return nil
}

func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	} else {
		// Storefront default: hide admin-disabled products
		query = query.Where("status <> ?", models.ProductStatusInactive)
	}

	if params.Featured != nil {
		query = query.Where("is_featured = ?", *params.Featured)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"LOWER(name_en) LIKE ? OR LOWER(name_zh_cn) LIKE ? OR LOWER(name_id) LIKE ? OR LOWER(sku) LIKE ?",
			searchTerm, searchTerm, searchTerm, searchTerm)
	}

	if params.PriceMin != nil {
		query = query.Where("price_usd >= ?", *params.PriceMin)
	}

	if params.PriceMax != nil {
		query = query.Where("price_usd <= ?", *params.PriceMax)
	}

	if len(params.Tags) > 0 {
		query = query.Where("tags && ?", pqArray(params.Tags))
	}

	if params.InStock != nil && *params.InStock {
		query = query.Where("stock_quantity > 0")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name_en", "sku", "price_usd", "price_cny", "stock_quantity"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) GetFeaturedProducts(limit int) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("status = ? AND is_featured = ?", models.ProductStatusActive, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch featured products: %w", err)
	}

	return products, nil
}

func (s *ProductService) GetLowStockProducts(threshold int) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("stock_quantity <= ? AND status <> ?", threshold, models.ProductStatusInactive).
		Order("stock_quantity ASC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch low stock products: %w", err)
	}

	return products, nil
}

// AdjustStock applies a signed stock delta under a row lock. Negative deltas
// that would drive stock below zero fail with InsufficientStock; crossing
// zero in either direction applies the out_of_stock/active status side effect.
func (s *ProductService) AdjustStock(id uuid.UUID, delta int) (*models.Product, error) {
	if delta == 0 {
		return nil, apperrors.InvalidArgument("stock delta must be non-zero")
	}

	var product models.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("product")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if delta < 0 {
			if err := product.DecreaseStock(-delta); err != nil {
				return err
			}
		} else {
			product.IncreaseStock(delta)
		}

		return persistStock(tx, &product)
	})

	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"product_id": id,
		"delta":      delta,
		"stock":      product.StockQuantity,
		"status":     product.Status,
	}).Info("Stock adjusted")

	return &product, nil
}

// SetStatus is an administrative override. It does not reconcile the status
// with the current stock level (a forced out_of_stock with stock on hand is
// allowed and left alone).
func (s *ProductService) SetStatus(id uuid.UUID, status models.ProductStatus) (*models.Product, error) {
	switch status {
	case models.ProductStatusActive, models.ProductStatusInactive, models.ProductStatusOutOfStock:
	default:
		return nil, apperrors.InvalidArgument(fmt.Sprintf("invalid product status: %s", status))
	}

	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(product).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update product status: %w", err)
	}

	product.Status = status
	return product, nil
}

func persistStock(tx *gorm.DB, product *models.Product) error {
	if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"stock_quantity": product.StockQuantity,
			"status":         product.Status,
		}).Error; err != nil {
		return fmt.Errorf("failed to persist stock: %w", err)
	}
	return nil
}
