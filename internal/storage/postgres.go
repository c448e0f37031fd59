package storage

import (
	"context"
	"database/sql"
	"fmt"

	"grab-atreat/internal/domain"
)

// PostgresArchive persists orders for history and cross-device sync. It is
// the remote half of the at-least-once persistence model: callers keep their
// local state even when a write here fails.
type PostgresArchive struct {
	DB *sql.DB
}

func NewPostgresArchive(db *sql.DB) *PostgresArchive {
	return &PostgresArchive{DB: db}
}

// EnsureSchema creates the archive tables when missing.
func (a *PostgresArchive) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL,
			restaurant_id INT NOT NULL,
			rider_id TEXT NOT NULL DEFAULT '',
			order_type TEXT NOT NULL,
			status TEXT NOT NULL,
			version BIGINT NOT NULL,
			payable BIGINT NOT NULL,
			tip BIGINT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			pnr TEXT NOT NULL DEFAULT '',
			coach TEXT NOT NULL DEFAULT '',
			seat TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_id TEXT NOT NULL REFERENCES orders(id),
			item_name TEXT NOT NULL,
			unit_price BIGINT NOT NULL,
			quantity INT NOT NULL,
			is_veg BOOLEAN NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS order_reviews (
			order_id TEXT PRIMARY KEY REFERENCES orders(id),
			rating INT NOT NULL,
			comment TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS order_refunds (
			order_id TEXT PRIMARY KEY REFERENCES orders(id),
			status TEXT NOT NULL,
			reason TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := a.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (a *PostgresArchive) InsertOrder(ctx context.Context, order *domain.Order) error {
	tx, err := a.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, restaurant_id, rider_id, order_type, status, version,
			payable, tip, address, pnr, coach, seat, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, order.ID, order.CustomerID, order.RestaurantID, order.RiderID, order.Type, order.Status,
		order.Version, order.Quote.Payable, order.Tip,
		order.Target.Address, order.Target.PNR, order.Target.Coach, order.Target.Seat, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, item_name, unit_price, quantity, is_veg)
			VALUES ($1, $2, $3, $4, $5)
		`, order.ID, item.ItemName, item.UnitPrice, item.Quantity, item.IsVeg)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (a *PostgresArchive) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, version int64) error {
	// Zero rows affected means the row is unknown or already at a newer
	// version; at-least-once delivery makes the latter normal.
	_, err := a.DB.ExecContext(ctx, `
		UPDATE orders SET status = $2, version = $3 WHERE id = $1 AND version < $3
	`, orderID, status, version)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

func (a *PostgresArchive) SaveReview(ctx context.Context, orderID string, review domain.Review) error {
	_, err := a.DB.ExecContext(ctx, `
		INSERT INTO order_reviews (order_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (order_id) DO NOTHING
	`, orderID, review.Rating, review.Comment, review.CreatedAt)
	if err != nil {
		return fmt.Errorf("save review: %w", err)
	}
	return nil
}

func (a *PostgresArchive) SaveRefund(ctx context.Context, orderID string, refund domain.Refund) error {
	_, err := a.DB.ExecContext(ctx, `
		INSERT INTO order_refunds (order_id, status, reason)
		VALUES ($1, $2, $3)
		ON CONFLICT (order_id) DO UPDATE SET status = EXCLUDED.status
	`, orderID, refund.Status, refund.Reason)
	if err != nil {
		return fmt.Errorf("save refund: %w", err)
	}
	return nil
}
