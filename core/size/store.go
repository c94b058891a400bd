package size

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, sz Size) error {
	const q = `
	INSERT INTO sizes (size_id, name, created_at, updated_at)
	VALUES (:size_id, :name, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, sz); err != nil {
		return fmt.Errorf("inserting size: %w", err)
	}
	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Size, error) {
	const q = `SELECT * FROM sizes WHERE size_id = $1`

	var sz Size
	if err := sqlx.GetContext(ctx, db, &sz, q, id); err != nil {
		return Size{}, err
	}
	return sz, nil
}

func FetchAll(ctx context.Context, db sqlx.ExtContext) ([]Size, error) {
	const q = `SELECT * FROM sizes ORDER BY created_at`

	szs := []Size{}
	if err := sqlx.SelectContext(ctx, db, &szs, q); err != nil {
		return nil, fmt.Errorf("selecting sizes: %w", err)
	}
	return szs, nil
}

func Update(ctx context.Context, db sqlx.ExtContext, sz Size) error {
	const q = `
	UPDATE sizes SET name = :name, updated_at = :updated_at
	WHERE size_id = :size_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, sz); err != nil {
		return fmt.Errorf("updating size[%s]: %w", sz.ID, err)
	}
	return nil
}

func Delete(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `DELETE FROM sizes WHERE size_id = $1`

	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting size[%s]: %w", id, err)
	}
	return nil
}
