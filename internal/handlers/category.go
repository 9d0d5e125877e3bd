// internal/handlers/category.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tradecraft/backend/internal/models"
	"github.com/tradecraft/backend/internal/services"
	"github.com/tradecraft/backend/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// categoryView is the localized read model returned to storefront clients.
type categoryView struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	SortOrder   int        `json:"sort_order"`
	IsActive    bool       `json:"is_active"`
}

func toCategoryView(category *models.Category, lang string) categoryView {
	return categoryView{
		ID:          category.ID,
		Name:        category.Name(lang),
		Description: category.Description(lang),
		ParentID:    category.ParentID,
		SortOrder:   category.SortOrder,
		IsActive:    category.IsActive,
	}
}

func toCategoryViews(categories []models.Category, lang string) []categoryView {
	views := make([]categoryView, 0, len(categories))
	for i := range categories {
		views = append(views, toCategoryView(&categories[i], lang))
	}
	return views
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	categories, err := h.categoryService.ListCategories(false)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, toCategoryViews(categories, lang))
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	category, err := h.categoryService.GetCategory(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, toCategoryView(category, utils.GetLangFromContext(c)))
}

func (h *CategoryHandler) ListChildren(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	children, err := h.categoryService.ListChildren(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, toCategoryViews(children, utils.GetLangFromContext(c)))
}

// Admin endpoints below return the full multi-locale record.

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req services.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	category, err := h.categoryService.UpdateCategory(id, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "category deleted"})
}
