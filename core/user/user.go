package user

import "time"

type User struct {
	ID           string    `json:"id" db:"account_id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PhotoURL     string    `json:"photoUrl" db:"photo_url"`
	Role         string    `json:"role" db:"role"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

type UserSignup struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type UserLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Address is a saved delivery address. The village field drives the
// shipping-rate lookup at checkout.
type Address struct {
	ID         string    `json:"id" db:"address_id"`
	UserID     string    `json:"-" db:"account_id"`
	Label      string    `json:"label" db:"label"`
	Recipient  string    `json:"recipient" db:"recipient"`
	Phone      string    `json:"phone" db:"phone"`
	Street     string    `json:"street" db:"street"`
	Village    string    `json:"village" db:"village"`
	District   string    `json:"district" db:"district"`
	City       string    `json:"city" db:"city"`
	Province   string    `json:"province" db:"province"`
	PostalCode string    `json:"postalCode" db:"postal_code"`
	Latitude   string    `json:"latitude" db:"latitude"`
	Longitude  string    `json:"longitude" db:"longitude"`
	IsPrimary  bool      `json:"isPrimary" db:"is_primary"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

type AddressNew struct {
	Label      string `json:"label"`
	Recipient  string `json:"recipient" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Street     string `json:"street" validate:"required"`
	Village    string `json:"village" validate:"required"`
	District   string `json:"district"`
	City       string `json:"city" validate:"required"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
	Latitude   string `json:"latitude"`
	Longitude  string `json:"longitude"`
	IsPrimary  bool   `json:"isPrimary"`
}

type AddressUp struct {
	Label      *string `json:"label"`
	Recipient  *string `json:"recipient"`
	Phone      *string `json:"phone"`
	Street     *string `json:"street"`
	Village    *string `json:"village"`
	District   *string `json:"district"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	PostalCode *string `json:"postalCode"`
	Latitude   *string `json:"latitude"`
	Longitude  *string `json:"longitude"`
	IsPrimary  *bool   `json:"isPrimary"`
}
