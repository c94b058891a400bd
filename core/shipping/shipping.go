package shipping

import (
	"strings"
	"time"
)

type Rate struct {
	ID        string    `json:"id" db:"rate_id"`
	Village   string    `json:"village" db:"village"`
	Price     int       `json:"price" db:"price"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type RateNew struct {
	Village string `json:"village" validate:"required"`
	Price   int    `json:"price" validate:"gte=0"`
}

type RateUp struct {
	Village *string `json:"village"`
	Price   *int    `json:"price" validate:"omitempty,gte=0"`
}

// Match picks the delivery cost for an address. The first rate whose
// village appears as a substring of the address wins; with no match a
// non-empty table falls back to its first entry, and an empty table
// costs nothing. The fallback looks arbitrary but it is the behavior
// the storefront has always had, so callers rely on rates arriving in
// creation order to keep it stable.
func Match(rates []Rate, address string) int {
	if len(rates) == 0 {
		return 0
	}

	addr := strings.ToLower(address)
	for _, r := range rates {
		if r.Village != "" && strings.Contains(addr, strings.ToLower(r.Village)) {
			return r.Price
		}
	}

	return rates[0].Price
}
