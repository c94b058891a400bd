package shipping

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hanifmaulana/tokokita/api/web"
	"github.com/hanifmaulana/tokokita/api/weberr"
	"github.com/hanifmaulana/tokokita/validate"
	"github.com/jmoiron/sqlx"
)

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		rts, err := FetchAll(ctx, db)
		if err != nil {
			return fmt.Errorf("listing shipping rates: %w", err)
		}

		return web.Respond(ctx, w, rts, http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var rnew RateNew
		if err := web.Decode(w, r, &rnew); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding shipping rate: %w", err))
		}

		if err := validate.Check(rnew); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		now := time.Now().UTC()
		rt := Rate{
			ID:        validate.GenerateID(),
			Village:   rnew.Village,
			Price:     rnew.Price,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := Create(ctx, db, rt); err != nil {
			return fmt.Errorf("creating shipping rate: %w", err)
		}

		return web.Respond(ctx, w, rt, http.StatusCreated)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var rup RateUp
		if err := web.Decode(w, r, &rup); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding shipping rate update: %w", err))
		}

		if err := validate.Check(rup); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		rt, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching shipping rate[%s]: %w", id, err)
		}

		if rup.Village != nil {
			rt.Village = *rup.Village
		}
		if rup.Price != nil {
			rt.Price = *rup.Price
		}
		rt.UpdatedAt = time.Now().UTC()

		if err := Update(ctx, db, rt); err != nil {
			return fmt.Errorf("updating shipping rate[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, rt, http.StatusOK)
	}
}

func HandleDelete(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if err := Delete(ctx, db, id); err != nil {
			return fmt.Errorf("deleting shipping rate[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
