package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups menu items on the public menu.
type Category struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  *string   `json:"description,omitempty" db:"description"`
	Color        string    `json:"color" db:"color"`
	Icon         *string   `json:"icon,omitempty" db:"icon"`
	ImagePath    *string   `json:"image_path,omitempty" db:"image_path"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// MenuItem is a dish on the menu.
type MenuItem struct {
	ID           string          `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Description  *string         `json:"description,omitempty" db:"description"`
	Price        decimal.Decimal `json:"price" db:"price"`
	CategoryID   *string         `json:"category_id,omitempty" db:"category_id"`
	CategoryName *string         `json:"category_name,omitempty"`
	ImagePath    *string         `json:"image_path,omitempty" db:"image_path"`
	Available    bool            `json:"available" db:"available"`
	Featured     bool            `json:"featured" db:"featured"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// MenuItemFilters narrows the menu item list.
type MenuItemFilters struct {
	CategoryID *string
	Available  *bool
	Featured   *bool
}

// GalleryImage is a processed photo shown in the gallery.
type GalleryImage struct {
	ID          string    `json:"id" db:"id"`
	Title       *string   `json:"title,omitempty" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	ImagePath   string    `json:"image_path" db:"image_path"`
	Type        string    `json:"type" db:"type"`
	Featured    bool      `json:"featured" db:"featured"`
	FileSize    int64     `json:"file_size" db:"file_size"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultGalleryType is used when an upload does not name a type.
const DefaultGalleryType = "food"

// GalleryFilters narrows the gallery list.
type GalleryFilters struct {
	Type     *string
	Featured *bool
}
