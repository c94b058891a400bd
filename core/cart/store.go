package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// FetchItems returns the user's cart rows joined with the product
// columns the storefront renders.
func FetchItems(ctx context.Context, db sqlx.ExtContext, userID string) ([]Item, error) {
	const q = `
	SELECT
		ci.account_id, ci.product_id, ci.size, ci.quantity, ci.created_at, ci.updated_at,
		p.title, p.price, p.thumbnail_url
	FROM cart_items ci
	JOIN products p ON p.product_id = ci.product_id
	WHERE ci.account_id = $1
	ORDER BY ci.created_at`

	items := []Item{}
	if err := sqlx.SelectContext(ctx, db, &items, q, userID); err != nil {
		return nil, fmt.Errorf("selecting cart items of user[%s]: %w", userID, err)
	}
	return items, nil
}

// UpsertItem adds the row or accumulates quantity on the existing one.
func UpsertItem(ctx context.Context, db sqlx.ExtContext, userID, productID, size string, quantity int) error {
	const q = `
	INSERT INTO cart_items (account_id, product_id, size, quantity, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $5)
	ON CONFLICT (account_id, product_id, size)
	DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`

	now := time.Now().UTC()
	if _, err := db.ExecContext(ctx, q, userID, productID, size, quantity, now); err != nil {
		return fmt.Errorf("upserting cart item: %w", err)
	}
	return nil
}

func DeleteItem(ctx context.Context, db sqlx.ExtContext, userID, productID, size string) error {
	const q = `DELETE FROM cart_items WHERE account_id = $1 AND product_id = $2 AND size = $3`

	if _, err := db.ExecContext(ctx, q, userID, productID, size); err != nil {
		return fmt.Errorf("deleting cart item: %w", err)
	}
	return nil
}

// Delete empties the user's cart.
func Delete(ctx context.Context, db sqlx.ExtContext, userID string) error {
	const q = `DELETE FROM cart_items WHERE account_id = $1`

	if _, err := db.ExecContext(ctx, q, userID); err != nil {
		return fmt.Errorf("flushing cart of user[%s]: %w", userID, err)
	}
	return nil
}
