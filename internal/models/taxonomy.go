package models

import "gorm.io/gorm"

// Two-tier workshop taxonomy: every task is filed under a category and
// optionally one of its subcategories.
type Category struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`

	Subcategories []Subcategory `json:"subcategories,omitempty"`
}

type Subcategory struct {
	gorm.Model
	CategoryID uint   `gorm:"index;not null" json:"category_id"`
	Name       string `gorm:"size:100;not null" json:"name"`
}
