package cart

import (
	"time"
)

type Cart struct {
	UserID    string `json:"-"`
	Items     []Item `json:"items"`
	Subtotal  int    `json:"subtotal"`
	ItemCount int    `json:"itemCount"`
}

type Item struct {
	UserID    string    `json:"-" db:"account_id"`
	ProductID string    `json:"productId" db:"product_id"`
	Size      string    `json:"size" db:"size"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Denormalized product columns joined into the listing.
	Title        string `json:"title" db:"title"`
	Price        string `json:"price" db:"price"`
	ThumbnailURL string `json:"thumbnail" db:"thumbnail_url"`
}

type ItemNew struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" validate:"required,gte=1,lte=99"`
}
