package product

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList stores a string slice as a jsonb column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported scan source %T for StringList", src)
	}
	return json.Unmarshal(b, l)
}

// Product keeps the price as the display string the storefront renders
// ("125.000"); checkout arithmetic normalizes it on the fly.
type Product struct {
	ID           string     `json:"id" db:"product_id"`
	Title        string     `json:"title" db:"title"`
	Slug         string     `json:"slug" db:"slug"`
	Description  string     `json:"description" db:"description"`
	Price        string     `json:"price" db:"price"`
	ThumbnailURL string     `json:"thumbnail" db:"thumbnail_url"`
	ImageURLs    StringList `json:"images" db:"image_urls"`
	CategoryID   *string    `json:"categoryId" db:"category_id"`
	Sizes        StringList `json:"sizes" db:"size_names"`
	Featured     bool       `json:"featured" db:"featured"`
	Version      int        `json:"-" db:"version"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}

type ProductNew struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	Price        string   `json:"price" validate:"required"`
	ThumbnailURL string   `json:"thumbnail" validate:"required,url"`
	ImageURLs    []string `json:"images" validate:"omitempty,dive,url"`
	CategoryID   *string  `json:"categoryId" validate:"omitempty,uuid"`
	Sizes        []string `json:"sizes"`
	Featured     bool     `json:"featured"`
}

type ProductUp struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Price        *string   `json:"price"`
	ThumbnailURL *string   `json:"thumbnail" validate:"omitempty,url"`
	ImageURLs    *[]string `json:"images" validate:"omitempty,dive,url"`
	CategoryID   *string   `json:"categoryId" validate:"omitempty,uuid"`
	Sizes        *[]string `json:"sizes"`
	Featured     *bool     `json:"featured"`
}

// Filter narrows and pages the product listing.
type Filter struct {
	Page       int
	PageSize   int
	CategoryID string
	Search     string
	Featured   *bool
}

// Page is one listing page plus the total row count so clients can
// render pagination controls.
type Page struct {
	Items    []Product `json:"items"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
}
