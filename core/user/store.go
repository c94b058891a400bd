package user

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, usr User) error {
	const q = `
	INSERT INTO accounts (account_id, name, email, photo_url, role, password_hash, created_at, updated_at)
	VALUES (:account_id, :name, :email, :photo_url, :role, :password_hash, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, usr); err != nil {
		return fmt.Errorf("inserting account: %w", err)
	}
	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (User, error) {
	const q = `SELECT * FROM accounts WHERE account_id = $1`

	var usr User
	if err := sqlx.GetContext(ctx, db, &usr, q, id); err != nil {
		return User{}, err
	}
	return usr, nil
}

func FetchByEmail(ctx context.Context, db sqlx.ExtContext, email string) (User, error) {
	const q = `SELECT * FROM accounts WHERE email = $1`

	var usr User
	if err := sqlx.GetContext(ctx, db, &usr, q, email); err != nil {
		return User{}, err
	}
	return usr, nil
}

func Update(ctx context.Context, db sqlx.ExtContext, usr User) error {
	const q = `
	UPDATE accounts SET
		name = :name,
		photo_url = :photo_url,
		updated_at = :updated_at
	WHERE account_id = :account_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, usr); err != nil {
		return fmt.Errorf("updating account[%s]: %w", usr.ID, err)
	}
	return nil
}

func CreateAddress(ctx context.Context, db sqlx.ExtContext, adr Address) error {
	const q = `
	INSERT INTO addresses
		(address_id, account_id, label, recipient, phone, street, village, district,
		 city, province, postal_code, latitude, longitude, is_primary, created_at, updated_at)
	VALUES
		(:address_id, :account_id, :label, :recipient, :phone, :street, :village, :district,
		 :city, :province, :postal_code, :latitude, :longitude, :is_primary, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, adr); err != nil {
		return fmt.Errorf("inserting address: %w", err)
	}
	return nil
}

func FetchAddress(ctx context.Context, db sqlx.ExtContext, id string) (Address, error) {
	const q = `SELECT * FROM addresses WHERE address_id = $1`

	var adr Address
	if err := sqlx.GetContext(ctx, db, &adr, q, id); err != nil {
		return Address{}, err
	}
	return adr, nil
}

func FetchAddresses(ctx context.Context, db sqlx.ExtContext, userID string) ([]Address, error) {
	const q = `
	SELECT * FROM addresses
	WHERE account_id = $1
	ORDER BY is_primary DESC, created_at`

	adrs := []Address{}
	if err := sqlx.SelectContext(ctx, db, &adrs, q, userID); err != nil {
		return nil, fmt.Errorf("selecting addresses of user[%s]: %w", userID, err)
	}
	return adrs, nil
}

// FetchPrimaryAddress returns the user's primary address, falling back
// to the oldest saved one when no address is flagged primary.
func FetchPrimaryAddress(ctx context.Context, db sqlx.ExtContext, userID string) (Address, error) {
	const q = `
	SELECT * FROM addresses
	WHERE account_id = $1
	ORDER BY is_primary DESC, created_at
	LIMIT 1`

	var adr Address
	if err := sqlx.GetContext(ctx, db, &adr, q, userID); err != nil {
		return Address{}, err
	}
	return adr, nil
}

func UpdateAddress(ctx context.Context, db sqlx.ExtContext, adr Address) error {
	const q = `
	UPDATE addresses SET
		label = :label,
		recipient = :recipient,
		phone = :phone,
		street = :street,
		village = :village,
		district = :district,
		city = :city,
		province = :province,
		postal_code = :postal_code,
		latitude = :latitude,
		longitude = :longitude,
		is_primary = :is_primary,
		updated_at = :updated_at
	WHERE address_id = :address_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, adr); err != nil {
		return fmt.Errorf("updating address[%s]: %w", adr.ID, err)
	}
	return nil
}

func DeleteAddress(ctx context.Context, db sqlx.ExtContext, id string, userID string) error {
	const q = `DELETE FROM addresses WHERE address_id = $1 AND account_id = $2`

	if _, err := db.ExecContext(ctx, q, id, userID); err != nil {
		return fmt.Errorf("deleting address[%s]: %w", id, err)
	}
	return nil
}

// ClearPrimaryAddress unsets the primary flag on all of the user's
// addresses, run before promoting another one.
func ClearPrimaryAddress(ctx context.Context, db sqlx.ExtContext, userID string) error {
	const q = `UPDATE addresses SET is_primary = FALSE WHERE account_id = $1`

	if _, err := db.ExecContext(ctx, q, userID); err != nil {
		return fmt.Errorf("clearing primary address of user[%s]: %w", userID, err)
	}
	return nil
}
