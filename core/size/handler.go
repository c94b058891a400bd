package size

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
		szs, err := FetchAll(ctx, db)
		if err != nil {
			return fmt.Errorf("listing sizes: %w", err)
		}

		return web.Respond(ctx, w, szs, http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var snew SizeNew
		if err := web.Decode(w, r, &snew); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding size: %w", err))
		}

		if err := validate.Check(snew); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		now := time.Now().UTC()
		sz := Size{
			ID:        validate.GenerateID(),
			Name:      snew.Name,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := Create(ctx, db, sz); err != nil {
			return fmt.Errorf("creating size: %w", err)
		}

		return web.Respond(ctx, w, sz, http.StatusCreated)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var sup SizeUp
		if err := web.Decode(w, r, &sup); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding size update: %w", err))
		}

		if err := validate.Check(sup); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		sz, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching size[%s]: %w", id, err)
		}

		sz.Name = sup.Name
		sz.UpdatedAt = time.Now().UTC()

		if err := Update(ctx, db, sz); err != nil {
			return fmt.Errorf("updating size[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, sz, http.StatusOK)
	}
}

func HandleDelete(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if err := Delete(ctx, db, id); err != nil {
			return fmt.Errorf("deleting size[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
