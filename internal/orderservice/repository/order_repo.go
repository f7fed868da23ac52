package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"pos-system/internal/domain"
)

type OrderRepositoryInterface interface {
	Create(ctx context.Context, order domain.Order, numberPrefix string) (domain.Order, error)
	GetByID(ctx context.Context, id int64) (domain.Order, error)
	ListOpen(ctx context.Context) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	AdvanceStatus(ctx context.Context, id int64, target domain.Status, changedBy string) (domain.Order, error)
}

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, order_number, items, total_amount, status, notes, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (domain.Order, error) {
	var o domain.Order
	var items []byte
	if err := row.Scan(&o.ID, &o.Number, &items, &o.TotalAmount, &o.Status, &o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return domain.Order{}, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return domain.Order{}, fmt.Errorf("decode order items: %w", err)
	}
	return o, nil
}

// Create assigns the next number in the prefix's sequence and inserts the
// order plus its first status-log entry, all in one transaction. The unique
// constraint on order_number is the hard guarantee; a collision under
// concurrent creates surfaces as an insert error and the client retries.
func (r *OrderRepository) Create(ctx context.Context, order domain.Order, numberPrefix string) (domain.Order, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return domain.Order{}, fmt.Errorf("encode order items: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE order_number LIKE $1 || '%'`, numberPrefix,
	).Scan(&count); err != nil {
		return domain.Order{}, fmt.Errorf("count orders: %w", err)
	}
	number := fmt.Sprintf("%s%04d", numberPrefix, count+1)

	row := tx.QueryRowContext(ctx, `
		INSERT INTO orders (order_number, items, total_amount, status, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+orderColumns,
		number, items, order.TotalAmount, order.Status, order.Notes,
	)
	created, err := scanOrder(row)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO order_status_log (order_id, status, changed_by)
		VALUES ($1, $2, 'order-service')
	`, created.ID, created.Status); err != nil {
		return domain.Order{}, fmt.Errorf("insert status log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, fmt.Errorf("commit tx: %w", err)
	}
	return created, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// ListOpen returns every order that is not yet completed, oldest first —
// the board order the kitchen works through.
func (r *OrderRepository) ListOpen(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE status != 'completed' ORDER BY created_at ASC`)
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *OrderRepository) list(ctx context.Context, query string) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return orders, nil
}

// AdvanceStatus moves an order to target iff target is the next state after
// the status currently stored. The row is locked for the duration, so a
// stale client racing a fresh one cannot skip or rewind the sequence.
func (r *OrderRepository) AdvanceStatus(ctx context.Context, id int64, target domain.Status, changedBy string) (domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var current domain.Status
	err = tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("lock order: %w", err)
	}

	next, ok := current.Next()
	if !ok || next != target {
		return domain.Order{}, domain.ErrInvalidTransition
	}

	row := tx.QueryRowContext(ctx, `
		UPDATE orders SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+orderColumns,
		id, target,
	)
	updated, err := scanOrder(row)
	if err != nil {
		return domain.Order{}, fmt.Errorf("update order: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO order_status_log (order_id, status, changed_by)
		VALUES ($1, $2, $3)
	`, id, target, changedBy); err != nil {
		return domain.Order{}, fmt.Errorf("insert status log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, fmt.Errorf("commit tx: %w", err)
	}
	return updated, nil
}
