package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type FavoriteRow struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	ProductID string `db:"product_id"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

type FavoriteRepo struct{ db *sqlx.DB }

func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Add inserts the favorite; added is false when it already existed.
func (r *FavoriteRepo) Add(userID, productID string) (row FavoriteRow, added bool, err error) {
	ts := now()
	res, err := r.db.Exec(`
	  INSERT INTO favorites(id, user_id, product_id, created_at, updated_at)
	  VALUES(?, ?, ?, ?, ?)
	  ON CONFLICT(user_id, product_id) DO NOTHING
	`, uuid.NewString(), userID, productID, ts, ts)
	if err != nil {
		return FavoriteRow{}, false, err
	}
	n, _ := res.RowsAffected()
	row, err = r.Get(userID, productID)
	return row, n > 0, err
}

func (r *FavoriteRepo) Get(userID, productID string) (FavoriteRow, error) {
	var f FavoriteRow
	err := r.db.Get(&f, `SELECT id, user_id, product_id, created_at, updated_at FROM favorites WHERE user_id=? AND product_id=?`, userID, productID)
	return f, err
}

func (r *FavoriteRepo) Remove(userID, productID string) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM favorites WHERE user_id=? AND product_id=?`, userID, productID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *FavoriteRepo) Exists(userID, productID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM favorites WHERE user_id=? AND product_id=?`, userID, productID)
	return n > 0, err
}

func (r *FavoriteRepo) List(userID string) ([]FavoriteRow, error) {
	var out []FavoriteRow
	err := r.db.Select(&out, `
	  SELECT f.id, f.user_id, f.product_id, f.created_at, f.updated_at
	  FROM favorites f
	  WHERE f.user_id = ?
	  ORDER BY f.created_at, f.id
	`, userID)
	return out, err
}

func (r *FavoriteRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM favorites`)
	return n, err
}
