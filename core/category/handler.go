package category

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
		cats, err := FetchAll(ctx, db)
		if err != nil {
			return fmt.Errorf("listing categories: %w", err)
		}

		return web.Respond(ctx, w, cats, http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var cnew CategoryNew
		if err := web.Decode(w, r, &cnew); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding category: %w", err))
		}

		if err := validate.Check(cnew); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		now := time.Now().UTC()
		cat := Category{
			ID:        validate.GenerateID(),
			Name:      cnew.Name,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := Create(ctx, db, cat); err != nil {
			return fmt.Errorf("creating category: %w", err)
		}

		return web.Respond(ctx, w, cat, http.StatusCreated)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var cup CategoryUp
		if err := web.Decode(w, r, &cup); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding category update: %w", err))
		}

		if err := validate.Check(cup); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		cat, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching category[%s]: %w", id, err)
		}

		cat.Name = cup.Name
		cat.UpdatedAt = time.Now().UTC()

		if err := Update(ctx, db, cat); err != nil {
			return fmt.Errorf("updating category[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, cat, http.StatusOK)
	}
}

func HandleDelete(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if err := Delete(ctx, db, id); err != nil {
			return fmt.Errorf("deleting category[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
