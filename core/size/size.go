package size

import "time"

type Size struct {
	ID        string    `json:"id" db:"size_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type SizeNew struct {
	Name string `json:"name" validate:"required"`
}

type SizeUp struct {
	Name string `json:"name" validate:"required"`
}
