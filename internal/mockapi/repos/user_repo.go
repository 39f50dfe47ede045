package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type UserRow struct {
	ID        string `db:"id"`
	Email     string `db:"email"`
	Name      string `db:"name"`
	Phone     string `db:"phone"`
	Hash      string `db:"password_hash"`
	Role      string `db:"role"`
	CreatedAt string `db:"created_at"`
}

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByEmail(email string) (*UserRow, error) {
	var u UserRow
	err := r.DB.Get(&u, `SELECT id,email,name,phone,password_hash,role,created_at FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*UserRow, error) {
	var u UserRow
	err := r.DB.Get(&u, `SELECT id,email,name,phone,password_hash,role,created_at FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a customer account. The caller hashes the password.
func (r *UserRepo) Create(email, name, phone, hash string) (*UserRow, error) {
	u := UserRow{ID: uuid.NewString(), Email: email, Name: name, Phone: phone, Hash: hash, Role: "customer", CreatedAt: now()}
	_, err := r.DB.Exec(`
		INSERT INTO users(id,email,name,phone,password_hash,role,created_at,updated_at)
		VALUES(?,?,?,?,?,?,?,?)
	`, u.ID, u.Email, u.Name, u.Phone, u.Hash, u.Role, u.CreatedAt, u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Recent(limit int) ([]UserRow, error) {
	var out []UserRow
	err := r.DB.Select(&out, `
		SELECT id,email,name,phone,'' AS password_hash,role,created_at
		FROM users
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	return out, err
}

func (r *UserRepo) Count() (int, error) {
	var n int
	err := r.DB.Get(&n, `SELECT COUNT(*) FROM users`)
	return n, err
}
