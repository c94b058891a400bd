package shipping

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, rt Rate) error {
	const q = `
	INSERT INTO shipping_rates (rate_id, village, price, created_at, updated_at)
	VALUES (:rate_id, :village, :price, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, rt); err != nil {
		return fmt.Errorf("inserting shipping rate: %w", err)
	}
	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Rate, error) {
	const q = `SELECT * FROM shipping_rates WHERE rate_id = $1`

	var rt Rate
	if err := sqlx.GetContext(ctx, db, &rt, q, id); err != nil {
		return Rate{}, err
	}
	return rt, nil
}

// FetchAll returns rates in creation order. Match's fallback picks the
// first row, so the ordering here is part of the contract.
func FetchAll(ctx context.Context, db sqlx.ExtContext) ([]Rate, error) {
	const q = `SELECT * FROM shipping_rates ORDER BY created_at, rate_id`

	rts := []Rate{}
	if err := sqlx.SelectContext(ctx, db, &rts, q); err != nil {
		return nil, fmt.Errorf("selecting shipping rates: %w", err)
	}
	return rts, nil
}

func Update(ctx context.Context, db sqlx.ExtContext, rt Rate) error {
	const q = `
	UPDATE shipping_rates SET village = :village, price = :price, updated_at = :updated_at
	WHERE rate_id = :rate_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, rt); err != nil {
		return fmt.Errorf("updating shipping rate[%s]: %w", rt.ID, err)
	}
	return nil
}

func Delete(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `DELETE FROM shipping_rates WHERE rate_id = $1`

	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting shipping rate[%s]: %w", id, err)
	}
	return nil
}
