package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pos-system/internal/domain"
)

type MenuRepositoryInterface interface {
	ListAvailable(ctx context.Context) ([]domain.MenuItem, error)
	GetByID(ctx context.Context, id int64) (domain.MenuItem, error)
	Upsert(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error)
}

type MenuRepository struct {
	db *sql.DB
}

func NewMenuRepository(db *sql.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

const menuColumns = `id, name, price, category, description, available`

func (r *MenuRepository) ListAvailable(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE available ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("query menu: %w", err)
	}
	defer rows.Close()

	items := make([]domain.MenuItem, 0)
	for rows.Next() {
		var m domain.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Price, &m.Category, &m.Description, &m.Available); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return items, nil
}

func (r *MenuRepository) GetByID(ctx context.Context, id int64) (domain.MenuItem, error) {
	var m domain.MenuItem
	err := r.db.QueryRowContext(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.Price, &m.Category, &m.Description, &m.Available)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MenuItem{}, domain.ErrMenuItemNotFound
	}
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("get menu item: %w", err)
	}
	return m, nil
}

func (r *MenuRepository) Upsert(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error) {
	var row *sql.Row
	if item.ID == 0 {
		row = r.db.QueryRowContext(ctx, `
			INSERT INTO menu_items (name, price, category, description, available)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+menuColumns,
			item.Name, item.Price, item.Category, item.Description, item.Available,
		)
	} else {
		row = r.db.QueryRowContext(ctx, `
			UPDATE menu_items SET name = $2, price = $3, category = $4, description = $5, available = $6
			WHERE id = $1
			RETURNING `+menuColumns,
			item.ID, item.Name, item.Price, item.Category, item.Description, item.Available,
		)
	}
	var m domain.MenuItem
	err := row.Scan(&m.ID, &m.Name, &m.Price, &m.Category, &m.Description, &m.Available)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MenuItem{}, domain.ErrMenuItemNotFound
	}
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("upsert menu item: %w", err)
	}
	return m, nil
}
