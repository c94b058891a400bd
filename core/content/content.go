// Package content manages the admin-edited site content: home page
// sections, testimonials, gallery items and blog posts. They share one
// package because they are all flat documents with the same CRUD shape.
package content

import "time"

type HomeContent struct {
	ID        string    `json:"id" db:"content_id"`
	Key       string    `json:"key" db:"key"`
	Title     string    `json:"title" db:"title"`
	Subtitle  string    `json:"subtitle" db:"subtitle"`
	Body      string    `json:"body" db:"body"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type HomeContentNew struct {
	Key      string `json:"key" validate:"required"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url"`
	Position int    `json:"position" validate:"gte=0"`
}

type HomeContentUp struct {
	Title    *string `json:"title"`
	Subtitle *string `json:"subtitle"`
	Body     *string `json:"body"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,url"`
	Position *int    `json:"position" validate:"omitempty,gte=0"`
}

type Testimonial struct {
	ID        string    `json:"id" db:"testimonial_id"`
	Name      string    `json:"name" db:"name"`
	Role      string    `json:"role" db:"role"`
	Body      string    `json:"body" db:"body"`
	AvatarURL string    `json:"avatarUrl" db:"avatar_url"`
	Published bool      `json:"published" db:"published"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type TestimonialNew struct {
	Name      string `json:"name" validate:"required"`
	Role      string `json:"role"`
	Body      string `json:"body" validate:"required"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
	Published bool   `json:"published"`
}

type TestimonialUp struct {
	Name      *string `json:"name"`
	Role      *string `json:"role"`
	Body      *string `json:"body"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
	Published *bool   `json:"published"`
}

type GalleryItem struct {
	ID        string    `json:"id" db:"gallery_id"`
	Title     string    `json:"title" db:"title"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type GalleryItemNew struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl" validate:"required,url"`
}

type BlogPost struct {
	ID          string     `json:"id" db:"post_id"`
	Title       string     `json:"title" db:"title"`
	Slug        string     `json:"slug" db:"slug"`
	Body        string     `json:"body" db:"body"`
	CoverURL    string     `json:"coverUrl" db:"cover_url"`
	PublishedAt *time.Time `json:"publishedAt" db:"published_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

type BlogPostNew struct {
	Title    string `json:"title" validate:"required"`
	Slug     string `json:"slug" validate:"required"`
	Body     string `json:"body"`
	CoverURL string `json:"coverUrl" validate:"omitempty,url"`
	Publish  bool   `json:"publish"`
}

type BlogPostUp struct {
	Title    *string `json:"title"`
	Slug     *string `json:"slug"`
	Body     *string `json:"body"`
	CoverURL *string `json:"coverUrl" validate:"omitempty,url"`
	Publish  *bool   `json:"publish"`
}

// Settings is the storefront identity block served to the frontend:
// the WhatsApp contact and the map embed for the location section.
type Settings struct {
	ShopName       string `json:"shopName"`
	WhatsAppNumber string `json:"whatsappNumber"`
	Latitude       string `json:"latitude"`
	Longitude      string `json:"longitude"`
	MapEmbedURL    string `json:"mapEmbedUrl"`
}
