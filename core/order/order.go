package order

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/hanifmaulana/tokokita/random"
)

type Status string

const (
	Pending Status = "pending"
	Success Status = "success"
	Failed  Status = "failed"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentAccepted PaymentStatus = "accepted"
	PaymentRejected PaymentStatus = "rejected"
)

// UserInfo is the buyer profile denormalized into the transaction at
// checkout time, so the order keeps rendering even if the account
// changes later.
type UserInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photo"`
}

// LineItem snapshots one purchased product. Price stays the display
// string the catalog holds; arithmetic normalizes it via money.Parse.
type LineItem struct {
	ProductID    string `json:"id"`
	Title        string `json:"title"`
	Price        string `json:"price"`
	ThumbnailURL string `json:"thumbnail"`
	Size         string `json:"size"`
	Quantity     int    `json:"quantity"`
}

type LineItems []LineItem

// ShippingInfo is the delivery address snapshot.
type ShippingInfo struct {
	Recipient  string `json:"recipient"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	Village    string `json:"village"`
	District   string `json:"district"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
}

type Payment struct {
	Method   string        `json:"method"`
	ProofURL string        `json:"proof"`
	Status   PaymentStatus `json:"status"`
}

type Transaction struct {
	ID             string       `json:"transactionId" db:"trx_id"`
	UserID         string       `json:"userId" db:"account_id"`
	UserInfo       UserInfo     `json:"userInfo" db:"user_info"`
	Items          LineItems    `json:"items" db:"items"`
	Subtotal       int          `json:"subtotal" db:"subtotal"`
	ShippingCost   int          `json:"shippingCost" db:"shipping_cost"`
	TotalAmount    int          `json:"totalAmount" db:"total_amount"`
	ShippingInfo   ShippingInfo `json:"shippingInfo" db:"shipping_info"`
	Message        string       `json:"message" db:"message"`
	Status         Status       `json:"status" db:"status"`
	Payment        Payment      `json:"paymentInfo" db:"payment"`
	Delivery       Delivery     `json:"deliveryStatus" db:"delivery"`
	OrderDate      time.Time    `json:"orderDate" db:"order_date"`
	ExpirationTime time.Time    `json:"expirationTime" db:"expiration_time"`
	UpdatedAt      time.Time    `json:"updatedAt" db:"updated_at"`
}

// NewRef builds a user-facing transaction reference, TRX-<unix ms>-<6
// uppercase alphanumerics>.
func NewRef(now time.Time) string {
	return fmt.Sprintf("TRX-%d-%s", now.UnixMilli(), random.Upper(6))
}

var refPattern = regexp.MustCompile(`^TRX-\d+-[A-Z0-9]{6}$`)

func CheckRef(ref string) error {
	if !refPattern.MatchString(ref) {
		return fmt.Errorf("malformed transaction reference")
	}
	return nil
}

func jsonValue(v interface{}) (driver.Value, error) {
	return json.Marshal(v)
}

func jsonScan(src, dst interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported scan source %T", src)
	}
	return json.Unmarshal(b, dst)
}

func (u UserInfo) Value() (driver.Value, error) { return jsonValue(u) }
func (u *UserInfo) Scan(src interface{}) error  { return jsonScan(src, u) }

func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		l = LineItems{}
	}
	return jsonValue(l)
}
func (l *LineItems) Scan(src interface{}) error { return jsonScan(src, l) }

func (s ShippingInfo) Value() (driver.Value, error) { return jsonValue(s) }
func (s *ShippingInfo) Scan(src interface{}) error  { return jsonScan(src, s) }

func (p Payment) Value() (driver.Value, error) { return jsonValue(p) }
func (p *Payment) Scan(src interface{}) error  { return jsonScan(src, p) }

func (d Delivery) Value() (driver.Value, error) { return jsonValue(d) }
func (d *Delivery) Scan(src interface{}) error  { return jsonScan(src, d) }
