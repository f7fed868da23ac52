package database

import (
	"context"
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS menu_items (
	id          BIGSERIAL PRIMARY KEY,
	name        TEXT NOT NULL,
	price       NUMERIC(10,2) NOT NULL CHECK (price >= 0),
	category    TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	available   BOOLEAN NOT NULL DEFAULT TRUE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orders (
	id           BIGSERIAL PRIMARY KEY,
	order_number TEXT UNIQUE NOT NULL,
	items        JSONB NOT NULL,
	total_amount NUMERIC(10,2) NOT NULL,
	status       TEXT NOT NULL DEFAULT 'pending',
	notes        TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS order_status_log (
	id         BIGSERIAL PRIMARY KEY,
	order_id   BIGINT NOT NULL REFERENCES orders(id),
	status     TEXT NOT NULL,
	changed_by TEXT NOT NULL DEFAULT '',
	changed_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
CREATE INDEX IF NOT EXISTS idx_status_log_order ON order_status_log(order_id);
`

var seedMenu = []struct {
	name     string
	price    float64
	category string
	desc     string
}{
	{"Burger", 10.00, "Mains", "Classic beef burger with fries"},
	{"Cheeseburger", 12.00, "Mains", "Burger with cheese and house sauce"},
	{"Fried Chicken", 15.00, "Mains", "Crispy fried chicken with sides"},
	{"Margherita Pizza", 18.00, "Mains", "Tomato and mozzarella"},
	{"Caesar Salad", 8.00, "Salads", "Romaine with caesar dressing"},
	{"Fries", 5.00, "Sides", "Golden crispy fries"},
	{"Onion Rings", 6.00, "Sides", "Battered onion rings"},
	{"Cola", 3.00, "Drinks", "Iced cola"},
	{"Orange Juice", 4.00, "Drinks", "Freshly squeezed"},
	{"Coffee", 4.50, "Drinks", "Hot coffee"},
	{"Ice Cream", 5.00, "Desserts", "Vanilla ice cream"},
	{"Chocolate Cake", 7.00, "Desserts", "Rich chocolate cake"},
}

// InitSchema creates the tables and seeds the menu on a fresh database.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&count); err != nil {
		return fmt.Errorf("check menu: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, m := range seedMenu {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO menu_items (name, price, category, description) VALUES ($1, $2, $3, $4)`,
			m.name, m.price, m.category, m.desc,
		); err != nil {
			return fmt.Errorf("seed menu item %s: %w", m.name, err)
		}
	}
	return nil
}
