package order

import (
	"context"
	"fmt"
	"time"

	"github.com/hanifmaulana/tokokita/database"
	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, trx Transaction) error {
	const q = `
	INSERT INTO transactions
		(trx_id, account_id, user_info, items, subtotal, shipping_cost, total_amount,
		 shipping_info, message, status, payment, delivery, order_date, expiration_time, updated_at)
	VALUES
		(:trx_id, :account_id, :user_info, :items, :subtotal, :shipping_cost, :total_amount,
		 :shipping_info, :message, :status, :payment, :delivery, :order_date, :expiration_time, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, trx); err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, ref string) (Transaction, error) {
	const q = `SELECT * FROM transactions WHERE trx_id = $1`

	var trx Transaction
	if err := sqlx.GetContext(ctx, db, &trx, q, ref); err != nil {
		return Transaction{}, err
	}
	return trx, nil
}

func fetchForUpdate(ctx context.Context, db sqlx.ExtContext, ref string) (Transaction, error) {
	const q = `SELECT * FROM transactions WHERE trx_id = $1 FOR UPDATE`

	var trx Transaction
	if err := sqlx.GetContext(ctx, db, &trx, q, ref); err != nil {
		return Transaction{}, err
	}
	return trx, nil
}

func FetchByUser(ctx context.Context, db sqlx.ExtContext, userID string) ([]Transaction, error) {
	const q = `
	SELECT * FROM transactions
	WHERE account_id = $1
	ORDER BY order_date DESC`

	trxs := []Transaction{}
	if err := sqlx.SelectContext(ctx, db, &trxs, q, userID); err != nil {
		return nil, fmt.Errorf("selecting transactions of user[%s]: %w", userID, err)
	}
	return trxs, nil
}

func FetchAll(ctx context.Context, db sqlx.ExtContext) ([]Transaction, error) {
	const q = `SELECT * FROM transactions ORDER BY order_date DESC`

	trxs := []Transaction{}
	if err := sqlx.SelectContext(ctx, db, &trxs, q); err != nil {
		return nil, fmt.Errorf("selecting transactions: %w", err)
	}
	return trxs, nil
}

func update(ctx context.Context, db sqlx.ExtContext, trx Transaction) error {
	const q = `
	UPDATE transactions SET
		status = :status,
		payment = :payment,
		delivery = :delivery,
		updated_at = :updated_at
	WHERE trx_id = :trx_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, trx); err != nil {
		return fmt.Errorf("updating transaction[%s]: %w", trx.ID, err)
	}
	return nil
}

// UpdateDelivery applies one stage transition under a row lock, so the
// backward guard and the history append cannot be raced past by a
// second admin.
func UpdateDelivery(ctx context.Context, db *sqlx.DB, ref string, target DeliveryStage) (Transaction, error) {
	var trx Transaction

	err := database.Transaction(db, func(tx sqlx.ExtContext) error {
		var err error
		trx, err = fetchForUpdate(ctx, tx, ref)
		if err != nil {
			return err
		}

		next, err := trx.Delivery.Transition(target, time.Now().UTC())
		if err != nil {
			return err
		}

		trx.Delivery = next
		trx.UpdatedAt = time.Now().UTC()
		return update(ctx, tx, trx)
	})
	if err != nil {
		return Transaction{}, err
	}

	return trx, nil
}

// UpdatePayment records the admin verdict on the payment proof and
// couples the overall order outcome to it.
func UpdatePayment(ctx context.Context, db *sqlx.DB, ref string, verdict PaymentStatus) (Transaction, error) {
	var trx Transaction

	err := database.Transaction(db, func(tx sqlx.ExtContext) error {
		var err error
		trx, err = fetchForUpdate(ctx, tx, ref)
		if err != nil {
			return err
		}

		trx.Payment.Status = verdict
		switch verdict {
		case PaymentAccepted:
			trx.Status = Success
		case PaymentRejected:
			trx.Status = Failed
		}
		trx.UpdatedAt = time.Now().UTC()
		return update(ctx, tx, trx)
	})
	if err != nil {
		return Transaction{}, err
	}

	return trx, nil
}
