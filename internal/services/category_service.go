// internal/services/category_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tradecraft/backend/internal/apperrors"
	"github.com/tradecraft/backend/internal/models"
	"github.com/tradecraft/backend/internal/utils"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

type CreateCategoryRequest struct {
	NameEN        string     `json:"name_en" validate:"required,max=200"`
	NameZhCN      string     `json:"name_zh_cn" validate:"required,max=200"`
	NameID        string     `json:"name_id" validate:"required,max=200"`
	DescriptionEN string     `json:"description_en,omitempty"`
	DescriptionZh string     `json:"description_zh_cn,omitempty"`
	DescriptionID string     `json:"description_id,omitempty"`
	ParentID      *uuid.UUID `json:"parent_id,omitempty"`
	SortOrder     int        `json:"sort_order,omitempty"`
}

type UpdateCategoryRequest struct {
	NameEN        *string    `json:"name_en,omitempty" validate:"omitempty,max=200"`
	NameZhCN      *string    `json:"name_zh_cn,omitempty" validate:"omitempty,max=200"`
	NameID        *string    `json:"name_id,omitempty" validate:"omitempty,max=200"`
	DescriptionEN *string    `json:"description_en,omitempty"`
	DescriptionZh *string    `json:"description_zh_cn,omitempty"`
	DescriptionID *string    `json:"description_id,omitempty"`
	ParentID      *uuid.UUID `json:"parent_id,omitempty"`
	SortOrder     *int       `json:"sort_order,omitempty"`
	IsActive      *bool      `json:"is_active,omitempty"`
}

func (s *CategoryService) CreateCategory(req *CreateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidArgument(fmt.Sprintf("validation failed: %v", err))
	}

	if req.ParentID != nil {
		if _, err := s.GetCategory(*req.ParentID); err != nil {
			return nil, err
		}
	}

	category := &models.Category{
		NameEN:        req.NameEN,
		NameZhCN:      req.NameZhCN,
		NameID:        req.NameID,
		DescriptionEN: req.DescriptionEN,
		DescriptionZh: req.DescriptionZh,
		DescriptionID: req.DescriptionID,
		ParentID:      req.ParentID,
		SortOrder:     req.SortOrder,
		IsActive:      true,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	logrus.WithField("category_id", category.ID).Info("Category created")
	return category, nil
}

func (s *CategoryService) GetCategory(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("category")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

// ListCategories returns active categories, roots first by sort order. Pass
// includeInactive for the admin view.
func (s *CategoryService) ListCategories(includeInactive bool) ([]models.Category, error) {
	query := s.db.Model(&models.Category{})
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var categories []models.Category
	if err := query.Order("parent_id ASC NULLS FIRST, sort_order ASC, name_en ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	return categories, nil
}

func (s *CategoryService) ListChildren(parentID uuid.UUID) ([]models.Category, error) {
	if _, err := s.GetCategory(parentID); err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := s.db.Where("parent_id = ? AND is_active = ?", parentID, true).
		Order("sort_order ASC, name_en ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch child categories: %w", err)
	}

	return categories, nil
}

func (s *CategoryService) UpdateCategory(id uuid.UUID, req *UpdateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidArgument(fmt.Sprintf("validation failed: %v", err))
	}

	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
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
	if req.ParentID != nil {
		if *req.ParentID == id {
			return nil, apperrors.InvalidArgument("category cannot be its own parent")
		}
		if _, err := s.GetCategory(*req.ParentID); err != nil {
			return nil, err
		}
		updates["parent_id"] = *req.ParentID
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
	}

	return s.GetCategory(id)
}

// DeleteCategory refuses to remove a category that still has products or
// child categories attached.
func (s *CategoryService) DeleteCategory(id uuid.UUID) error {
	category, err := s.GetCategory(id)
	if err != nil {
		return err
	}

	var productCount int64
	if err := s.db.Model(&models.Product{}).Where("category_id = ?", id).
		Count(&productCount).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if productCount > 0 {
		return apperrors.Conflict("category still has products")
	}

	var childCount int64
	if err := s.db.Model(&models.Category{}).Where("parent_id = ?", id).
		Count(&childCount).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if childCount > 0 {
		return apperrors.Conflict("category still has child categories")
	}

	if err := s.db.Delete(category).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	logrus.WithField("category_id", id).Info("Category deleted")
	return nil
}
