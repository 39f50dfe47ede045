package repos

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ProductRow struct {
	ID            string          `db:"id"`
	CategoryID    string          `db:"category_id"`
	CategoryName  string          `db:"category_name"`
	Name          string          `db:"name"`
	Description   string          `db:"description"`
	Price         float64         `db:"price"`
	OriginalPrice sql.NullFloat64 `db:"original_price"`
	ImagesJSON    string          `db:"images_json"`
	FeaturesJSON  string          `db:"features_json"`
	InStock       bool            `db:"in_stock"`
	IsNew         bool            `db:"is_new"`
	OnSale        bool            `db:"on_sale"`
	CreatedAt     string          `db:"created_at"`
	UpdatedAt     string          `db:"updated_at"`
}

func (p ProductRow) Images() []string   { return decodeList(p.ImagesJSON) }
func (p ProductRow) Features() []string { return decodeList(p.FeaturesJSON) }

// ProductFields is the writable part of a product.
type ProductFields struct {
	CategoryID    string
	Name          string
	Description   string
	Price         float64
	OriginalPrice *float64
	Images        []string
	Features      []string
	InStock       bool
	IsNew         bool
	OnSale        bool
}

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
    p.id, p.category_id, c.name AS category_name, p.name, p.description, p.price, p.original_price,
    p.images_json, p.features_json, p.in_stock, p.is_new, p.on_sale, p.created_at, p.updated_at`

func (r *ProductRepo) List() ([]ProductRow, error) {
	var out []ProductRow
	err := r.db.Select(&out, `
  SELECT`+productCols+`
  FROM products p
  JOIN categories c ON c.id = p.category_id
  ORDER BY p.created_at DESC, p.name
`)
	return out, err
}

func (r *ProductRepo) Get(id string) (ProductRow, error) {
	var p ProductRow
	err := r.db.Get(&p, `
  SELECT`+productCols+`
  FROM products p
  JOIN categories c ON c.id = p.category_id
  WHERE p.id = ?
`, id)
	return p, err
}

func (r *ProductRepo) Recent(limit int) ([]ProductRow, error) {
	var out []ProductRow
	err := r.db.Select(&out, `
  SELECT`+productCols+`
  FROM products p
  JOIN categories c ON c.id = p.category_id
  ORDER BY p.created_at DESC, p.id
  LIMIT ?
`, limit)
	return out, err
}

func (r *ProductRepo) Create(f ProductFields) (string, error) {
	id := uuid.NewString()
	ts := now()
	_, err := r.db.Exec(`
	  INSERT INTO products(id,category_id,name,description,price,original_price,images_json,features_json,in_stock,is_new,on_sale,created_at,updated_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, id, f.CategoryID, f.Name, f.Description, f.Price, nullable(f.OriginalPrice),
		encodeList(f.Images), encodeList(f.Features), f.InStock, f.IsNew, f.OnSale, ts, ts)
	return id, err
}

func (r *ProductRepo) Update(id string, f ProductFields) (int64, error) {
	res, err := r.db.Exec(`
	  UPDATE products SET
	    category_id=?, name=?, description=?, price=?, original_price=?, images_json=?, features_json=?,
	    in_stock=?, is_new=?, on_sale=?, updated_at=?
	  WHERE id=?
	`, f.CategoryID, f.Name, f.Description, f.Price, nullable(f.OriginalPrice),
		encodeList(f.Images), encodeList(f.Features), f.InStock, f.IsNew, f.OnSale, now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ProductRepo) Delete(id string) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM products WHERE id=?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func encodeList(v []string) string {
	if v == nil {
		v = []string{}
	}
	s, err := json.MarshalToString(v)
	if err != nil {
		return "[]"
	}
	return s
}

func decodeList(s string) []string {
	out := []string{}
	if s == "" {
		return out
	}
	if err := json.UnmarshalFromString(s, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
