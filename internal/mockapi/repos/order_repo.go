package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type OrderRow struct {
	ID         string  `db:"id"`
	UserID     string  `db:"user_id"`
	ProductID  string  `db:"product_id"`
	Amount     int     `db:"amount"`
	TotalMoney float64 `db:"total_money"`
	CreatedAt  string  `db:"created_at"`
	UpdatedAt  string  `db:"updated_at"`
}

// Create inserts one order line.
func (r *OrderRepo) Create(userID, productID string, amount int, total float64) (OrderRow, error) {
	ts := now()
	o := OrderRow{ID: uuid.NewString(), UserID: userID, ProductID: productID, Amount: amount, TotalMoney: total, CreatedAt: ts, UpdatedAt: ts}
	_, err := r.db.Exec(`
	  INSERT INTO orders(id, user_id, product_id, amount, total_money, created_at, updated_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?)
	`, o.ID, o.UserID, o.ProductID, o.Amount, o.TotalMoney, o.CreatedAt, o.UpdatedAt)
	return o, err
}

// ListByUser returns a user's orders, newest first.
func (r *OrderRepo) ListByUser(userID string) ([]OrderRow, error) {
	var out []OrderRow
	err := r.db.Select(&out, `
		SELECT id, user_id, product_id, amount, total_money, created_at, updated_at
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC, id
	`, userID)
	return out, err
}

func (r *OrderRepo) ListLatest(limit int) ([]OrderRow, error) {
	if limit <= 0 {
		limit = 500
	}
	var out []OrderRow
	err := r.db.Select(&out, `
		SELECT id, user_id, product_id, amount, total_money, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders`)
	return n, err
}
