package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CategoryRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	CreatedAt   string `db:"created_at"`
	UpdatedAt   string `db:"updated_at"`
}

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]CategoryRow, error) {
	var out []CategoryRow
	err := r.db.Select(&out, `
  SELECT id, name, description, created_at, updated_at
  FROM categories
  ORDER BY name
`)
	return out, err
}

func (r *CategoryRepo) Get(id string) (CategoryRow, error) {
	var c CategoryRow
	err := r.db.Get(&c, `SELECT id, name, description, created_at, updated_at FROM categories WHERE id = ?`, id)
	return c, err
}

// Resolve finds a category by id or, failing that, by name (case-insensitive).
func (r *CategoryRepo) Resolve(idOrName string) (CategoryRow, error) {
	var c CategoryRow
	err := r.db.Get(&c, `
  SELECT id, name, description, created_at, updated_at
  FROM categories
  WHERE id = ? OR LOWER(name) = LOWER(?)
  ORDER BY id = ? DESC
  LIMIT 1
`, idOrName, idOrName, idOrName)
	return c, err
}

func (r *CategoryRepo) Create(name, description string) (CategoryRow, error) {
	ts := now()
	c := CategoryRow{ID: uuid.NewString(), Name: name, Description: description, CreatedAt: ts, UpdatedAt: ts}
	_, err := r.db.Exec(`INSERT INTO categories(id,name,description,created_at,updated_at) VALUES(?,?,?,?,?)`,
		c.ID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt)
	return c, err
}

func (r *CategoryRepo) Update(id, name, description string) (int64, error) {
	res, err := r.db.Exec(`UPDATE categories SET name=?, description=?, updated_at=? WHERE id=?`, name, description, now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *CategoryRepo) Delete(id string) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM categories WHERE id=?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *CategoryRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM categories`)
	return n, err
}
