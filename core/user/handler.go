package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hanifmaulana/tokokita/api/web"
	"github.com/hanifmaulana/tokokita/api/weberr"
	"github.com/hanifmaulana/tokokita/core/claims"
	"github.com/hanifmaulana/tokokita/database"
	"github.com/hanifmaulana/tokokita/validate"
	"github.com/jmoiron/sqlx"
)

func HandleShowCurrent(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(err)
		}

		usr, err := Fetch(ctx, db, clm.UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching user[%s]: %w", clm.UserID, err)
		}

		return web.Respond(ctx, w, usr, http.StatusOK)
	}
}

func HandleListAddresses(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(err)
		}

		adrs, err := FetchAddresses(ctx, db, clm.UserID)
		if err != nil {
			return fmt.Errorf("listing addresses: %w", err)
		}

		return web.Respond(ctx, w, adrs, http.StatusOK)
	}
}

func HandleCreateAddress(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(err)
		}

		var anew AddressNew
		if err := web.Decode(w, r, &anew); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding address: %w", err))
		}

		if err := validate.Check(anew); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		now := time.Now().UTC()
		adr := Address{
			ID:         validate.GenerateID(),
			UserID:     clm.UserID,
			Label:      anew.Label,
			Recipient:  anew.Recipient,
			Phone:      anew.Phone,
			Street:     anew.Street,
			Village:    anew.Village,
			District:   anew.District,
			City:       anew.City,
			Province:   anew.Province,
			PostalCode: anew.PostalCode,
			Latitude:   anew.Latitude,
			Longitude:  anew.Longitude,
			IsPrimary:  anew.IsPrimary,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			if adr.IsPrimary {
				if err := ClearPrimaryAddress(ctx, tx, clm.UserID); err != nil {
					return err
				}
			}
			return CreateAddress(ctx, tx, adr)
		})
		if err != nil {
			return fmt.Errorf("creating address: %w", err)
		}

		return web.Respond(ctx, w, adr, http.StatusCreated)
	}
}

func HandleUpdateAddress(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(err)
		}

		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var aup AddressUp
		if err := web.Decode(w, r, &aup); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding address update: %w", err))
		}

		if err := validate.Check(aup); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		adr, err := FetchAddress(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching address[%s]: %w", id, err)
		}

		if adr.UserID != clm.UserID {
			return weberr.NotFound(errors.New("address belongs to another user"))
		}

		if aup.Label != nil {
			adr.Label = *aup.Label
		}
		if aup.Recipient != nil {
			adr.Recipient = *aup.Recipient
		}
		if aup.Phone != nil {
			adr.Phone = *aup.Phone
		}
		if aup.Street != nil {
			adr.Street = *aup.Street
		}
		if aup.Village != nil {
			adr.Village = *aup.Village
		}
		if aup.District != nil {
			adr.District = *aup.District
		}
		if aup.City != nil {
			adr.City = *aup.City
		}
		if aup.Province != nil {
			adr.Province = *aup.Province
		}
		if aup.PostalCode != nil {
			adr.PostalCode = *aup.PostalCode
		}
		if aup.Latitude != nil {
			adr.Latitude = *aup.Latitude
		}
		if aup.Longitude != nil {
			adr.Longitude = *aup.Longitude
		}
		if aup.IsPrimary != nil {
			adr.IsPrimary = *aup.IsPrimary
		}
		adr.UpdatedAt = time.Now().UTC()

		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			if aup.IsPrimary != nil && *aup.IsPrimary {
				if err := ClearPrimaryAddress(ctx, tx, clm.UserID); err != nil {
					return err
				}
			}
			return UpdateAddress(ctx, tx, adr)
		})
		if err != nil {
			return fmt.Errorf("updating address[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, adr, http.StatusOK)
	}
}

func HandleDeleteAddress(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(err)
		}

		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if err := DeleteAddress(ctx, db, id, clm.UserID); err != nil {
			return fmt.Errorf("deleting address[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
