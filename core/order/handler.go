package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hanifmaulana/tokokita/api/background"
	"github.com/hanifmaulana/tokokita/api/web"
	"github.com/hanifmaulana/tokokita/api/weberr"
	"github.com/hanifmaulana/tokokita/core/cart"
	"github.com/hanifmaulana/tokokita/core/claims"
	"github.com/hanifmaulana/tokokita/core/shipping"
	"github.com/hanifmaulana/tokokita/core/user"
	"github.com/hanifmaulana/tokokita/database"
	"github.com/hanifmaulana/tokokita/pubsub"
	"github.com/hanifmaulana/tokokita/validate"
	"github.com/jmoiron/sqlx"
)

// pickAddress resolves the address the order ships to: the one the
// client named, or the user's primary one.
func pickAddress(ctx context.Context, db *sqlx.DB, userID, addressID string) (user.Address, error) {
	if addressID != "" {
		adr, err := user.FetchAddress(ctx, db, addressID)
		if err != nil {
			return user.Address{}, err
		}
		if adr.UserID != userID {
			return user.Address{}, sql.ErrNoRows
		}
		return adr, nil
	}

	return user.FetchPrimaryAddress(ctx, db, userID)
}

func HandleCheckout(db *sqlx.DB, broker pubsub.Broker, bg *background.Background, expiration time.Duration) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var cnew CheckoutNew
		if err := web.Decode(w, r, &cnew); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding checkout: %w", err))
		}

		if err := validate.Check(cnew); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		usr, err := user.Fetch(ctx, db, clm.UserID)
		if err != nil {
			return fmt.Errorf("fetching user[%s]: %w", clm.UserID, err)
		}

		cartItems, err := cart.FetchItems(ctx, db, clm.UserID)
		if err != nil {
			return fmt.Errorf("fetching cart items: %w", err)
		}
		if len(cartItems) == 0 {
			err := errors.New("no items to checkout")
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		adr, err := pickAddress(ctx, db, clm.UserID, cnew.AddressID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				err := errors.New("no delivery address on file")
				return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
			}
			return fmt.Errorf("resolving delivery address: %w", err)
		}

		rates, err := shipping.FetchAll(ctx, db)
		if err != nil {
			return fmt.Errorf("fetching shipping rates: %w", err)
		}

		fullAddr := strings.Join([]string{adr.Street, adr.Village, adr.District, adr.City}, ", ")
		cost := shipping.Match(rates, fullAddr)

		items := make(LineItems, 0, len(cartItems))
		for _, ci := range cartItems {
			items = append(items, LineItem{
				ProductID:    ci.ProductID,
				Title:        ci.Title,
				Price:        ci.Price,
				ThumbnailURL: ci.ThumbnailURL,
				Size:         ci.Size,
				Quantity:     ci.Quantity,
			})
		}

		subtotal, total := Totals(items, cost)

		now := time.Now().UTC()
		trx := Transaction{
			ID:     NewRef(now),
			UserID: clm.UserID,
			UserInfo: UserInfo{
				Name:     usr.Name,
				Email:    usr.Email,
				PhotoURL: usr.PhotoURL,
			},
			Items:        items,
			Subtotal:     subtotal,
			ShippingCost: cost,
			TotalAmount:  total,
			ShippingInfo: ShippingInfo{
				Recipient:  adr.Recipient,
				Phone:      adr.Phone,
				Street:     adr.Street,
				Village:    adr.Village,
				District:   adr.District,
				City:       adr.City,
				Province:   adr.Province,
				PostalCode: adr.PostalCode,
			},
			Message: cnew.Message,
			Status:  Pending,
			Payment: Payment{
				Method:   cnew.PaymentMethod,
				ProofURL: cnew.ProofURL,
				Status:   PaymentPending,
			},
			Delivery:       NewDelivery(now),
			OrderDate:      now,
			ExpirationTime: now.Add(expiration),
			UpdatedAt:      now,
		}

		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			if err := Create(ctx, tx, trx); err != nil {
				return err
			}
			return cart.Delete(ctx, tx, clm.UserID)
		})
		if err != nil {
			return fmt.Errorf("creating transaction: %w", err)
		}

		Publish(bg, broker, trx)

		return web.Respond(ctx, w, trx, http.StatusCreated)
	}
}

func HandleListOwn(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(err)
		}

		trxs, err := FetchByUser(ctx, db, clm.UserID)
		if err != nil {
			return fmt.Errorf("listing own transactions: %w", err)
		}

		return web.Respond(ctx, w, trxs, http.StatusOK)
	}
}

// HandleTrack is the public order-tracking lookup by reference.
func HandleTrack(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ref := web.Param(r, "ref")
		if err := CheckRef(ref); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		trx, err := Fetch(ctx, db, ref)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching transaction[%s]: %w", ref, err)
		}

		return web.Respond(ctx, w, trx, http.StatusOK)
	}
}

func HandleListAll(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		trxs, err := FetchAll(ctx, db)
		if err != nil {
			return fmt.Errorf("listing transactions: %w", err)
		}

		return web.Respond(ctx, w, trxs, http.StatusOK)
	}
}

func HandleUpdateDelivery(db *sqlx.DB, broker pubsub.Broker, bg *background.Background) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ref := web.Param(r, "ref")
		if err := CheckRef(ref); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var dup DeliveryUp
		if err := web.Decode(w, r, &dup); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding delivery update: %w", err))
		}

		if err := validate.Check(dup); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		trx, err := UpdateDelivery(ctx, db, ref, dup.Status)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			var terr *TransitionError
			if errors.As(err, &terr) {
				return weberr.NewError(err, err.Error(), http.StatusConflict)
			}
			return fmt.Errorf("updating delivery of transaction[%s]: %w", ref, err)
		}

		Publish(bg, broker, trx)

		return web.Respond(ctx, w, trx, http.StatusOK)
	}
}

func HandleUpdatePayment(db *sqlx.DB, broker pubsub.Broker, bg *background.Background) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ref := web.Param(r, "ref")
		if err := CheckRef(ref); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var pup PaymentUp
		if err := web.Decode(w, r, &pup); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding payment update: %w", err))
		}

		if err := validate.Check(pup); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		trx, err := UpdatePayment(ctx, db, ref, pup.Status)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("updating payment of transaction[%s]: %w", ref, err)
		}

		Publish(bg, broker, trx)

		return web.Respond(ctx, w, trx, http.StatusOK)
	}
}

// HandleWhatsApp serializes the caller's transaction into the order
// message template and returns the wa.me link that opens it.
func HandleWhatsApp(db *sqlx.DB, number string) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(err)
		}

		ref := web.Param(r, "ref")
		if err := CheckRef(ref); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		trx, err := Fetch(ctx, db, ref)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching transaction[%s]: %w", ref, err)
		}

		if trx.UserID != clm.UserID && !claims.IsAdmin(ctx) {
			return weberr.NotFound(errors.New("transaction belongs to another user"))
		}

		out := struct {
			URL string `json:"url"`
		}{WhatsAppURL(number, trx)}

		return web.Respond(ctx, w, out, http.StatusOK)
	}
}
