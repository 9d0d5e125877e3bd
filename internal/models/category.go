// internal/models/category.go
package models

import (
	"github.com/google/uuid"
)

// Category is a tree node. The parent link is an identifier only; children
// are resolved with an explicit query, never preloaded into a cyclic graph.
type Category struct {
	BaseModel
	NameEN        string     `json:"name_en" gorm:"size:200;not null"`
	NameZhCN      string     `json:"name_zh_cn" gorm:"size:200;not null"`
	NameID        string     `json:"name_id" gorm:"size:200;not null"`
	DescriptionEN string     `json:"description_en" gorm:"type:text"`
	DescriptionZh string     `json:"description_zh_cn" gorm:"column:description_zh_cn;type:text"`
	DescriptionID string     `json:"description_id" gorm:"type:text"`
	ParentID      *uuid.UUID `json:"parent_id" gorm:"type:uuid;index"`
	SortOrder     int        `json:"sort_order" gorm:"default:0;not null"`
	IsActive      bool       `json:"is_active" gorm:"default:true;not null"`
}

func (c *Category) Name(locale string) string {
	switch locale {
	case "zh_CN":
		return c.NameZhCN
	case "id":
		return c.NameID
	default:
		return c.NameEN
	}
}

func (c *Category) Description(locale string) string {
	switch locale {
	case "zh_CN":
		return c.DescriptionZh
	case "id":
		return c.DescriptionID
	default:
		return c.DescriptionEN
	}
}

func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}
