package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

const (
	defaultPageSize = 12
	maxPageSize     = 60
)

func Create(ctx context.Context, db sqlx.ExtContext, prd Product) error {
	const q = `
	INSERT INTO products
		(product_id, title, slug, description, price, thumbnail_url, image_urls,
		 category_id, size_names, featured, version, created_at, updated_at)
	VALUES
		(:product_id, :title, :slug, :description, :price, :thumbnail_url, :image_urls,
		 :category_id, :size_names, :featured, :version, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, prd); err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}
	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Product, error) {
	const q = `SELECT * FROM products WHERE product_id = $1`

	var prd Product
	if err := sqlx.GetContext(ctx, db, &prd, q, id); err != nil {
		return Product{}, err
	}
	return prd, nil
}

func FetchBySlug(ctx context.Context, db sqlx.ExtContext, slug string) (Product, error) {
	const q = `SELECT * FROM products WHERE slug = $1`

	var prd Product
	if err := sqlx.GetContext(ctx, db, &prd, q, slug); err != nil {
		return Product{}, err
	}
	return prd, nil
}

// FetchPage lists products under the filter, newest first.
func FetchPage(ctx context.Context, db sqlx.ExtContext, f Filter) (Page, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}

	var conds []string
	var args []interface{}

	add := func(cond string, val interface{}) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.CategoryID != "" {
		add("category_id = $%d", f.CategoryID)
	}
	if f.Search != "" {
		add("title ILIKE $%d", "%"+f.Search+"%")
	}
	if f.Featured != nil {
		add("featured = $%d", *f.Featured)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := sqlx.GetContext(ctx, db, &total, "SELECT COUNT(*) FROM products"+where, args...); err != nil {
		return Page{}, fmt.Errorf("counting products: %w", err)
	}

	q := fmt.Sprintf(
		"SELECT * FROM products%s ORDER BY created_at DESC, product_id LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2,
	)
	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)

	items := []Product{}
	if err := sqlx.SelectContext(ctx, db, &items, q, args...); err != nil {
		return Page{}, fmt.Errorf("selecting products: %w", err)
	}

	return Page{Items: items, Total: total, Page: f.Page, PageSize: f.PageSize}, nil
}

func Update(ctx context.Context, db sqlx.ExtContext, prd Product) error {
	const q = `
	UPDATE products SET
		title = :title,
		slug = :slug,
		description = :description,
		price = :price,
		thumbnail_url = :thumbnail_url,
		image_urls = :image_urls,
		category_id = :category_id,
		size_names = :size_names,
		featured = :featured,
		version = version + 1,
		updated_at = :updated_at
	WHERE product_id = :product_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, prd); err != nil {
		return fmt.Errorf("updating product[%s]: %w", prd.ID, err)
	}
	return nil
}

func Delete(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `DELETE FROM products WHERE product_id = $1`

	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting product[%s]: %w", id, err)
	}
	return nil
}
