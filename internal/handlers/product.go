// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tradecraft/backend/internal/models"
	"github.com/tradecraft/backend/internal/services"
	"github.com/tradecraft/backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// productView is the localized storefront read model: one name, one
// description, one price in the caller's currency.
type productView struct {
	ID            uuid.UUID            `json:"id"`
	CategoryID    uuid.UUID            `json:"category_id"`
	SKU           string               `json:"sku"`
	Name          string               `json:"name"`
	Description   string               `json:"description,omitempty"`
	Features      []string             `json:"features,omitempty"`
	Price         float64              `json:"price"`
	Currency      string               `json:"currency"`
	StockQuantity int                  `json:"stock_quantity"`
	Status        models.ProductStatus `json:"status"`
	IsFeatured    bool                 `json:"is_featured"`
	Images        []string             `json:"images,omitempty"`
	Tags          []string             `json:"tags,omitempty"`
}

func toProductView(product *models.Product, lang, currency string) productView {
	return productView{
		ID:            product.ID,
		CategoryID:    product.CategoryID,
		SKU:           product.SKU,
		Name:          product.Name(lang),
		Description:   product.Description(lang),
		Features:      product.Features(lang),
		Price:         product.Price(currency),
		Currency:      currency,
		StockQuantity: product.StockQuantity,
		Status:        product.Status,
		IsFeatured:    product.IsFeatured,
		Images:        product.Images,
		Tags:          product.Tags,
	}
}

func toProductViews(products []models.Product, lang, currency string) []productView {
	views := make([]productView, 0, len(products))
	for i := range products {
		views = append(views, toProductView(&products[i], lang, currency))
	}
	return views
}

func currencyFromQuery(c *gin.Context) string {
	currency := c.Query("currency")
	for _, supported := range models.SupportedCurrencies {
		if currency == supported {
			return currency
		}
	}
	return models.DefaultCurrency
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	params := services.ProductSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if categoryID := c.Query("category_id"); categoryID != "" {
		if id, err := uuid.Parse(categoryID); err == nil {
			params.CategoryID = &id
		}
	}
	if featured := c.Query("featured"); featured != "" {
		if value, err := strconv.ParseBool(featured); err == nil {
			params.Featured = &value
		}
	}
	if priceMin := c.Query("price_min"); priceMin != "" {
		if value, err := strconv.ParseFloat(priceMin, 64); err == nil {
			params.PriceMin = &value
		}
	}
	if priceMax := c.Query("price_max"); priceMax != "" {
		if value, err := strconv.ParseFloat(priceMax, 64); err == nil {
			params.PriceMax = &value
		}
	}
	if inStock := c.Query("in_stock"); inStock != "" {
		if value, err := strconv.ParseBool(inStock); err == nil {
			params.InStock = &value
		}
	}
	if tags, ok := c.GetQueryArray("tags"); ok {
		params.Tags = tags
	}

	products, total, err := h.productService.SearchProducts(params)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	currency := currencyFromQuery(c)
	result := utils.CreatePaginationResult(toProductViews(products, lang, currency), total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// ListProductsByCategory serves the category browse page; it is ListProducts
// with the category taken from the path.
func (h *ProductHandler) ListProductsByCategory(c *gin.Context) {
	categoryID, err := parseUUIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	params := services.ProductSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
		CategoryID:       &categoryID,
	}

	products, total, err := h.productService.SearchProducts(params)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	currency := currencyFromQuery(c)
	result := utils.CreatePaginationResult(toProductViews(products, lang, currency), total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	product, err := h.productService.GetProduct(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, toProductView(product, utils.GetLangFromContext(c), currencyFromQuery(c)))
}

func (h *ProductHandler) GetProductBySKU(c *gin.Context) {
	sku := c.Param("sku")
	if sku == "" {
		utils.BadRequestResponse(c, "SKU is required", nil)
		return
	}

	product, err := h.productService.GetProductBySKU(sku)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, toProductView(product, utils.GetLangFromContext(c), currencyFromQuery(c)))
}

func (h *ProductHandler) GetFeaturedProducts(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 && value <= 50 {
			limit = value
		}
	}

	products, err := h.productService.GetFeaturedProducts(limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, toProductViews(products, utils.GetLangFromContext(c), currencyFromQuery(c)))
}
