package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxDescriptionLength caps the optional product description.
const MaxDescriptionLength = 255

// Product represents an inventory item
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description,omitempty"` // Pointer for optional field
	ImagePath   *string         `json:"image_path,omitempty"`  // Pointer for optional field
	CreatedAt   time.Time       `json:"created_at"`
}

// ProductInput carries validated form fields for create and edit.
// ImagePath stays nil when no new file was uploaded so an update
// never clears an existing image.
type ProductInput struct {
	Name        string
	Price       decimal.Decimal
	Description *string
	ImagePath   *string
}
