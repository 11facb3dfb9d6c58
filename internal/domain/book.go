// Package domain defines the core entities of the catalog.
package domain

import (
	"strings"
	"time"
)

// Book is a catalog entry keyed by its primary ISBN.
type Book struct {
	ISBN        string     `json:"isbn"`
	ISBNRaw     string     `json:"isbn_raw,omitempty"` // Original ISBN field as received from the feed
	Title       string     `json:"title"`
	Author      string     `json:"author,omitempty"`
	Translator  string     `json:"translator,omitempty"`
	Publisher   string     `json:"publisher,omitempty"`
	Price       int64      `json:"price,omitempty"`
	SalePrice   int64      `json:"sale_price,omitempty"`
	Status      string     `json:"status,omitempty"` // Sale status as reported by the search API
	URL         string     `json:"url,omitempty"`    // Detail page URL
	ImageURL    string     `json:"image_url,omitempty"`
	Description string     `json:"description,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PrimaryISBN extracts the primary ISBN from a raw ISBN field.
// Feed records may carry several whitespace-separated ISBNs; the
// first token identifies the book.
func PrimaryISBN(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// CreateBookRequest carries the fields for creating a book by hand.
type CreateBookRequest struct {
	ISBN        string     `json:"isbn" validate:"required,min=10,max=17"`
	Title       string     `json:"title" validate:"required,min=1,max=500"`
	Author      string     `json:"author,omitempty" validate:"max=500"`
	Translator  string     `json:"translator,omitempty" validate:"max=500"`
	Publisher   string     `json:"publisher,omitempty" validate:"max=200"`
	Price       int64      `json:"price,omitempty" validate:"gte=0"`
	SalePrice   int64      `json:"sale_price,omitempty" validate:"gte=0"`
	Status      string     `json:"status,omitempty" validate:"max=50"`
	URL         string     `json:"url,omitempty" validate:"omitempty,url"`
	ImageURL    string     `json:"image_url,omitempty" validate:"omitempty,url"`
	Description string     `json:"description,omitempty" validate:"max=5000"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// UpdateBookRequest carries the fields for a partial book update.
// Nil pointers leave the stored value unchanged.
type UpdateBookRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Author      *string    `json:"author,omitempty" validate:"omitempty,max=500"`
	Translator  *string    `json:"translator,omitempty" validate:"omitempty,max=500"`
	Publisher   *string    `json:"publisher,omitempty" validate:"omitempty,max=200"`
	Price       *int64     `json:"price,omitempty" validate:"omitempty,gte=0"`
	SalePrice   *int64     `json:"sale_price,omitempty" validate:"omitempty,gte=0"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,max=50"`
	URL         *string    `json:"url,omitempty" validate:"omitempty,url"`
	ImageURL    *string    `json:"image_url,omitempty" validate:"omitempty,url"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}
