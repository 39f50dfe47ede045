package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ServiceRow struct {
	ID           string `db:"id"`
	Title        string `db:"title"`
	Description  string `db:"description"`
	Icon         string `db:"icon"`
	FeaturesJSON string `db:"features_json"`
	CreatedAt    string `db:"created_at"`
	UpdatedAt    string `db:"updated_at"`
}

func (s ServiceRow) Features() []string { return decodeList(s.FeaturesJSON) }

type ServiceRepo struct{ db *sqlx.DB }

func NewServiceRepo(db *sqlx.DB) *ServiceRepo { return &ServiceRepo{db: db} }

func (r *ServiceRepo) List() ([]ServiceRow, error) {
	var out []ServiceRow
	err := r.db.Select(&out, `
  SELECT id, title, description, icon, features_json, created_at, updated_at
  FROM services
  ORDER BY title
`)
	return out, err
}

func (r *ServiceRepo) Create(title, description, icon string, features []string) (string, error) {
	id := uuid.NewString()
	ts := now()
	_, err := r.db.Exec(`INSERT INTO services(id,title,description,icon,features_json,created_at,updated_at) VALUES(?,?,?,?,?,?,?)`,
		id, title, description, icon, encodeList(features), ts, ts)
	return id, err
}

func (r *ServiceRepo) Update(id, title, description, icon string, features []string) (int64, error) {
	res, err := r.db.Exec(`UPDATE services SET title=?, description=?, icon=?, features_json=?, updated_at=? WHERE id=?`,
		title, description, icon, encodeList(features), now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ServiceRepo) Delete(id string) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM services WHERE id=?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ServiceRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM services`)
	return n, err
}
