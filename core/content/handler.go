package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hanifmaulana/tokokita/api/web"
	"github.com/hanifmaulana/tokokita/api/weberr"
	"github.com/hanifmaulana/tokokita/config"
	"github.com/hanifmaulana/tokokita/validate"
	"github.com/jmoiron/sqlx"
)

func HandleListHome(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		hcs, err := FetchAllHome(ctx, db)
		if err != nil {
			return fmt.Errorf("listing home contents: %w", err)
		}

		return web.Respond(ctx, w, hcs, http.StatusOK)
	}
}

func HandleCreateHome(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var hnew HomeContentNew
		if err := web.Decode(w, r, &hnew); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding home content: %w", err))
		}

		if err := validate.Check(hnew); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		now := time.Now().UTC()
		hc := HomeContent{
			ID:        validate.GenerateID(),
			Key:       hnew.Key,
			Title:     hnew.Title,
			Subtitle:  hnew.Subtitle,
			Body:      hnew.Body,
			ImageURL:  hnew.ImageURL,
			Position:  hnew.Position,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := CreateHome(ctx, db, hc); err != nil {
			return fmt.Errorf("creating home content: %w", err)
		}

		return web.Respond(ctx, w, hc, http.StatusCreated)
	}
}

func HandleUpdateHome(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var hup HomeContentUp
		if err := web.Decode(w, r, &hup); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding home content update: %w", err))
		}

		if err := validate.Check(hup); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		hc, err := FetchHome(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching home content[%s]: %w", id, err)
		}

		if hup.Title != nil {
			hc.Title = *hup.Title
		}
		if hup.Subtitle != nil {
			hc.Subtitle = *hup.Subtitle
		}
		if hup.Body != nil {
			hc.Body = *hup.Body
		}
		if hup.ImageURL != nil {
			hc.ImageURL = *hup.ImageURL
		}
		if hup.Position != nil {
			hc.Position = *hup.Position
		}
		hc.UpdatedAt = time.Now().UTC()

		if err := UpdateHome(ctx, db, hc); err != nil {
			return fmt.Errorf("updating home content[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, hc, http.StatusOK)
	}
}

func HandleDeleteHome(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if err := DeleteHome(ctx, db, id); err != nil {
			return fmt.Errorf("deleting home content[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleListTestimonials(db *sqlx.DB, publishedOnly bool) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		tss, err := FetchTestimonials(ctx, db, publishedOnly)
		if err != nil {
			return fmt.Errorf("listing testimonials: %w", err)
		}

		return web.Respond(ctx, w, tss, http.StatusOK)
	}
}

func HandleCreateTestimonial(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var tnew TestimonialNew
		if err := web.Decode(w, r, &tnew); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding testimonial: %w", err))
		}

		if err := validate.Check(tnew); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		now := time.Now().UTC()
		ts := Testimonial{
			ID:        validate.GenerateID(),
			Name:      tnew.Name,
			Role:      tnew.Role,
			Body:      tnew.Body,
			AvatarURL: tnew.AvatarURL,
			Published: tnew.Published,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := CreateTestimonial(ctx, db, ts); err != nil {
			return fmt.Errorf("creating testimonial: %w", err)
		}

		return web.Respond(ctx, w, ts, http.StatusCreated)
	}
}

func HandleUpdateTestimonial(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var tup TestimonialUp
		if err := web.Decode(w, r, &tup); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding testimonial update: %w", err))
		}

		if err := validate.Check(tup); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		ts, err := FetchTestimonial(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching testimonial[%s]: %w", id, err)
		}

		if tup.Name != nil {
			ts.Name = *tup.Name
		}
		if tup.Role != nil {
			ts.Role = *tup.Role
		}
		if tup.Body != nil {
			ts.Body = *tup.Body
		}
		if tup.AvatarURL != nil {
			ts.AvatarURL = *tup.AvatarURL
		}
		if tup.Published != nil {
			ts.Published = *tup.Published
		}
		ts.UpdatedAt = time.Now().UTC()

		if err := UpdateTestimonial(ctx, db, ts); err != nil {
			return fmt.Errorf("updating testimonial[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, ts, http.StatusOK)
	}
}

func HandleDeleteTestimonial(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if err := DeleteTestimonial(ctx, db, id); err != nil {
			return fmt.Errorf("deleting testimonial[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleListGallery(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		gis, err := FetchGallery(ctx, db)
		if err != nil {
			return fmt.Errorf("listing gallery: %w", err)
		}

		return web.Respond(ctx, w, gis, http.StatusOK)
	}
}

func HandleCreateGalleryItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var gnew GalleryItemNew
		if err := web.Decode(w, r, &gnew); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding gallery item: %w", err))
		}

		if err := validate.Check(gnew); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		gi := GalleryItem{
			ID:        validate.GenerateID(),
			Title:     gnew.Title,
			ImageURL:  gnew.ImageURL,
			CreatedAt: time.Now().UTC(),
		}

		if err := CreateGalleryItem(ctx, db, gi); err != nil {
			return fmt.Errorf("creating gallery item: %w", err)
		}

		return web.Respond(ctx, w, gi, http.StatusCreated)
	}
}

func HandleDeleteGalleryItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if err := DeleteGalleryItem(ctx, db, id); err != nil {
			return fmt.Errorf("deleting gallery item[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleListBlogPosts(db *sqlx.DB, publishedOnly bool) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		bps, err := FetchBlogPosts(ctx, db, publishedOnly)
		if err != nil {
			return fmt.Errorf("listing blog posts: %w", err)
		}

		return web.Respond(ctx, w, bps, http.StatusOK)
	}
}

func HandleShowBlogPost(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		key := web.Param(r, "id")

		var bp BlogPost
		var err error
		if validate.CheckID(key) == nil {
			bp, err = FetchBlogPost(ctx, db, key)
		} else {
			bp, err = FetchBlogPostBySlug(ctx, db, key)
		}
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching blog post[%s]: %w", key, err)
		}

		return web.Respond(ctx, w, bp, http.StatusOK)
	}
}

func HandleCreateBlogPost(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var bnew BlogPostNew
		if err := web.Decode(w, r, &bnew); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding blog post: %w", err))
		}

		if err := validate.Check(bnew); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		now := time.Now().UTC()
		bp := BlogPost{
			ID:        validate.GenerateID(),
			Title:     bnew.Title,
			Slug:      bnew.Slug,
			Body:      bnew.Body,
			CoverURL:  bnew.CoverURL,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if bnew.Publish {
			bp.PublishedAt = &now
		}

		if err := CreateBlogPost(ctx, db, bp); err != nil {
			return fmt.Errorf("creating blog post: %w", err)
		}

		return web.Respond(ctx, w, bp, http.StatusCreated)
	}
}

func HandleUpdateBlogPost(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var bup BlogPostUp
		if err := web.Decode(w, r, &bup); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding blog post update: %w", err))
		}

		if err := validate.Check(bup); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		bp, err := FetchBlogPost(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching blog post[%s]: %w", id, err)
		}

		if bup.Title != nil {
			bp.Title = *bup.Title
		}
		if bup.Slug != nil {
			bp.Slug = *bup.Slug
		}
		if bup.Body != nil {
			bp.Body = *bup.Body
		}
		if bup.CoverURL != nil {
			bp.CoverURL = *bup.CoverURL
		}
		now := time.Now().UTC()
		if bup.Publish != nil {
			if *bup.Publish && bp.PublishedAt == nil {
				bp.PublishedAt = &now
			}
			if !*bup.Publish {
				bp.PublishedAt = nil
			}
		}
		bp.UpdatedAt = now

		if err := UpdateBlogPost(ctx, db, bp); err != nil {
			return fmt.Errorf("updating blog post[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, bp, http.StatusOK)
	}
}

func HandleDeleteBlogPost(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if err := DeleteBlogPost(ctx, db, id); err != nil {
			return fmt.Errorf("deleting blog post[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

// HandleShowSettings serves the static storefront identity block. The
// map embed is a plain OpenStreetMap iframe URL keyed by the raw
// coordinate strings.
func HandleShowSettings(shop config.Shop) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		embed := fmt.Sprintf(
			"https://www.openstreetmap.org/export/embed.html?marker=%s",
			url.QueryEscape(shop.Latitude+","+shop.Longitude),
		)

		st := Settings{
			ShopName:       shop.Name,
			WhatsAppNumber: shop.WhatsAppNumber,
			Latitude:       shop.Latitude,
			Longitude:      shop.Longitude,
			MapEmbedURL:    embed,
		}

		return web.Respond(ctx, w, st, http.StatusOK)
	}
}
