package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/hanifmaulana/tokokita/api/web"
	"github.com/hanifmaulana/tokokita/api/weberr"
	"github.com/hanifmaulana/tokokita/random"
	"github.com/hanifmaulana/tokokita/validate"
	"github.com/jmoiron/sqlx"
)

func slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		s = "product"
	}
	return s + "-" + strings.ToLower(random.Upper(4))
}

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		qp := r.URL.Query()

		f := Filter{
			CategoryID: qp.Get("category"),
			Search:     qp.Get("q"),
		}
		f.Page, _ = strconv.Atoi(qp.Get("page"))
		f.PageSize, _ = strconv.Atoi(qp.Get("pageSize"))

		if qp.Get("featured") != "" {
			v := qp.Get("featured") == "true"
			f.Featured = &v
		}

		if f.CategoryID != "" {
			if err := validate.CheckID(f.CategoryID); err != nil {
				return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
			}
		}

		page, err := FetchPage(ctx, db, f)
		if err != nil {
			return fmt.Errorf("listing products: %w", err)
		}

		return web.Respond(ctx, w, page, http.StatusOK)
	}
}

// HandleShow resolves the path parameter as a product id first and as
// a slug second, so storefront links can use either.
func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		key := web.Param(r, "id")

		var prd Product
		var err error
		if validate.CheckID(key) == nil {
			prd, err = Fetch(ctx, db, key)
		} else {
			prd, err = FetchBySlug(ctx, db, key)
		}
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching product[%s]: %w", key, err)
		}

		return web.Respond(ctx, w, prd, http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var pnew ProductNew
		if err := web.Decode(w, r, &pnew); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding product: %w", err))
		}

		if err := validate.Check(pnew); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		now := time.Now().UTC()
		prd := Product{
			ID:           validate.GenerateID(),
			Title:        pnew.Title,
			Slug:         slugify(pnew.Title),
			Description:  pnew.Description,
			Price:        pnew.Price,
			ThumbnailURL: pnew.ThumbnailURL,
			ImageURLs:    pnew.ImageURLs,
			CategoryID:   pnew.CategoryID,
			Sizes:        pnew.Sizes,
			Featured:     pnew.Featured,
			Version:      1,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := Create(ctx, db, prd); err != nil {
			return fmt.Errorf("creating product: %w", err)
		}

		return web.Respond(ctx, w, prd, http.StatusCreated)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var pup ProductUp
		if err := web.Decode(w, r, &pup); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding product update: %w", err))
		}

		if err := validate.Check(pup); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		prd, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching product[%s]: %w", id, err)
		}

		if pup.Title != nil {
			prd.Title = *pup.Title
			prd.Slug = slugify(*pup.Title)
		}
		if pup.Description != nil {
			prd.Description = *pup.Description
		}
		if pup.Price != nil {
			prd.Price = *pup.Price
		}
		if pup.ThumbnailURL != nil {
			prd.ThumbnailURL = *pup.ThumbnailURL
		}
		if pup.ImageURLs != nil {
			prd.ImageURLs = *pup.ImageURLs
		}
		if pup.CategoryID != nil {
			prd.CategoryID = pup.CategoryID
		}
		if pup.Sizes != nil {
			prd.Sizes = *pup.Sizes
		}
		if pup.Featured != nil {
			prd.Featured = *pup.Featured
		}
		prd.UpdatedAt = time.Now().UTC()

		if err := Update(ctx, db, prd); err != nil {
			return fmt.Errorf("updating product[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, prd, http.StatusOK)
	}
}

func HandleDelete(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if err := Delete(ctx, db, id); err != nil {
			return fmt.Errorf("deleting product[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
