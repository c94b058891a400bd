package content

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func CreateHome(ctx context.Context, db sqlx.ExtContext, hc HomeContent) error {
	const q = `
	INSERT INTO home_contents (content_id, key, title, subtitle, body, image_url, position, created_at, updated_at)
	VALUES (:content_id, :key, :title, :subtitle, :body, :image_url, :position, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, hc); err != nil {
		return fmt.Errorf("inserting home content: %w", err)
	}
	return nil
}

func FetchHome(ctx context.Context, db sqlx.ExtContext, id string) (HomeContent, error) {
	const q = `SELECT * FROM home_contents WHERE content_id = $1`

	var hc HomeContent
	if err := sqlx.GetContext(ctx, db, &hc, q, id); err != nil {
		return HomeContent{}, err
	}
	return hc, nil
}

func FetchAllHome(ctx context.Context, db sqlx.ExtContext) ([]HomeContent, error) {
	const q = `SELECT * FROM home_contents ORDER BY position, created_at`

	hcs := []HomeContent{}
	if err := sqlx.SelectContext(ctx, db, &hcs, q); err != nil {
		return nil, fmt.Errorf("selecting home contents: %w", err)
	}
	return hcs, nil
}

func UpdateHome(ctx context.Context, db sqlx.ExtContext, hc HomeContent) error {
	const q = `
	UPDATE home_contents SET
		title = :title,
		subtitle = :subtitle,
		body = :body,
		image_url = :image_url,
		position = :position,
		updated_at = :updated_at
	WHERE content_id = :content_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, hc); err != nil {
		return fmt.Errorf("updating home content[%s]: %w", hc.ID, err)
	}
	return nil
}

func DeleteHome(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `DELETE FROM home_contents WHERE content_id = $1`

	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting home content[%s]: %w", id, err)
	}
	return nil
}

func CreateTestimonial(ctx context.Context, db sqlx.ExtContext, ts Testimonial) error {
	const q = `
	INSERT INTO testimonials (testimonial_id, name, role, body, avatar_url, published, created_at, updated_at)
	VALUES (:testimonial_id, :name, :role, :body, :avatar_url, :published, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, ts); err != nil {
		return fmt.Errorf("inserting testimonial: %w", err)
	}
	return nil
}

func FetchTestimonial(ctx context.Context, db sqlx.ExtContext, id string) (Testimonial, error) {
	const q = `SELECT * FROM testimonials WHERE testimonial_id = $1`

	var ts Testimonial
	if err := sqlx.GetContext(ctx, db, &ts, q, id); err != nil {
		return Testimonial{}, err
	}
	return ts, nil
}

// FetchTestimonials lists testimonials; publishedOnly hides drafts for
// the public endpoint.
func FetchTestimonials(ctx context.Context, db sqlx.ExtContext, publishedOnly bool) ([]Testimonial, error) {
	q := `SELECT * FROM testimonials`
	if publishedOnly {
		q += ` WHERE published`
	}
	q += ` ORDER BY created_at DESC`

	tss := []Testimonial{}
	if err := sqlx.SelectContext(ctx, db, &tss, q); err != nil {
		return nil, fmt.Errorf("selecting testimonials: %w", err)
	}
	return tss, nil
}

func UpdateTestimonial(ctx context.Context, db sqlx.ExtContext, ts Testimonial) error {
	const q = `
	UPDATE testimonials SET
		name = :name,
		role = :role,
		body = :body,
		avatar_url = :avatar_url,
		published = :published,
		updated_at = :updated_at
	WHERE testimonial_id = :testimonial_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, ts); err != nil {
		return fmt.Errorf("updating testimonial[%s]: %w", ts.ID, err)
	}
	return nil
}

func DeleteTestimonial(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `DELETE FROM testimonials WHERE testimonial_id = $1`

	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting testimonial[%s]: %w", id, err)
	}
	return nil
}

func CreateGalleryItem(ctx context.Context, db sqlx.ExtContext, gi GalleryItem) error {
	const q = `
	INSERT INTO gallery_items (gallery_id, title, image_url, created_at)
	VALUES (:gallery_id, :title, :image_url, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, gi); err != nil {
		return fmt.Errorf("inserting gallery item: %w", err)
	}
	return nil
}

func FetchGallery(ctx context.Context, db sqlx.ExtContext) ([]GalleryItem, error) {
	const q = `SELECT * FROM gallery_items ORDER BY created_at DESC`

	gis := []GalleryItem{}
	if err := sqlx.SelectContext(ctx, db, &gis, q); err != nil {
		return nil, fmt.Errorf("selecting gallery items: %w", err)
	}
	return gis, nil
}

func DeleteGalleryItem(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `DELETE FROM gallery_items WHERE gallery_id = $1`

	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting gallery item[%s]: %w", id, err)
	}
	return nil
}

func CreateBlogPost(ctx context.Context, db sqlx.ExtContext, bp BlogPost) error {
	const q = `
	INSERT INTO blog_posts (post_id, title, slug, body, cover_url, published_at, created_at, updated_at)
	VALUES (:post_id, :title, :slug, :body, :cover_url, :published_at, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, bp); err != nil {
		return fmt.Errorf("inserting blog post: %w", err)
	}
	return nil
}

func FetchBlogPost(ctx context.Context, db sqlx.ExtContext, id string) (BlogPost, error) {
	const q = `SELECT * FROM blog_posts WHERE post_id = $1`

	var bp BlogPost
	if err := sqlx.GetContext(ctx, db, &bp, q, id); err != nil {
		return BlogPost{}, err
	}
	return bp, nil
}

func FetchBlogPostBySlug(ctx context.Context, db sqlx.ExtContext, slug string) (BlogPost, error) {
	const q = `SELECT * FROM blog_posts WHERE slug = $1`

	var bp BlogPost
	if err := sqlx.GetContext(ctx, db, &bp, q, slug); err != nil {
		return BlogPost{}, err
	}
	return bp, nil
}

func FetchBlogPosts(ctx context.Context, db sqlx.ExtContext, publishedOnly bool) ([]BlogPost, error) {
	q := `SELECT * FROM blog_posts`
	if publishedOnly {
		q += ` WHERE published_at IS NOT NULL`
	}
	q += ` ORDER BY created_at DESC`

	bps := []BlogPost{}
	if err := sqlx.SelectContext(ctx, db, &bps, q); err != nil {
		return nil, fmt.Errorf("selecting blog posts: %w", err)
	}
	return bps, nil
}

func UpdateBlogPost(ctx context.Context, db sqlx.ExtContext, bp BlogPost) error {
	const q = `
	UPDATE blog_posts SET
		title = :title,
		slug = :slug,
		body = :body,
		cover_url = :cover_url,
		published_at = :published_at,
		updated_at = :updated_at
	WHERE post_id = :post_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, bp); err != nil {
		return fmt.Errorf("updating blog post[%s]: %w", bp.ID, err)
	}
	return nil
}

func DeleteBlogPost(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `DELETE FROM blog_posts WHERE post_id = $1`

	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting blog post[%s]: %w", id, err)
	}
	return nil
}
