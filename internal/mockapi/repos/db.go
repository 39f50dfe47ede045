package repos

import (
	"log"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed catalog if DB is empty (categories/products/services)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  original_price NUMERIC,
  images_json TEXT NOT NULL DEFAULT '[]',
  features_json TEXT NOT NULL DEFAULT '[]',
  in_stock INTEGER NOT NULL DEFAULT 1,
  is_new INTEGER NOT NULL DEFAULT 0,
  on_sale INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Services
CREATE TABLE IF NOT EXISTS services(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  icon TEXT NOT NULL DEFAULT '',
  features_json TEXT NOT NULL DEFAULT '[]',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

-- Users
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('customer','admin')),
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Favorites
CREATE TABLE IF NOT EXISTS favorites(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  UNIQUE (user_id, product_id)
);

-- Orders: one row per product line
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id),
  product_id TEXT NOT NULL REFERENCES products(id),
  amount INTEGER NOT NULL CHECK (amount >= 1),
  total_money NUMERIC NOT NULL CHECK (total_money >= 0),
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products/services")

	ts := now()
	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name,description,created_at,updated_at) VALUES
	  ('smartphones','Smartphones','Latest phones from top brands',?,?),
	  ('tablets','Tablets','Tablets for work and play',?,?),
	  ('audio','Audio','Earbuds, headphones and speakers',?,?),
	  ('accessories','Accessories','Chargers, cables and cases',?,?),
	  ('wearables','Wearables','Smart watches and fitness bands',?,?)`,
		ts, ts, ts, ts, ts, ts, ts, ts, ts, ts)

	tx.MustExec(`INSERT INTO products(id,category_id,name,description,price,original_price,images_json,features_json,in_stock,is_new,on_sale,created_at,updated_at) VALUES
	  ('iphone-15-pro','smartphones','iPhone 15 Pro','Titanium design with A17 Pro chip',145000,155000,'["/media/products/iphone-15-pro.jpg"]','["A17 Pro","48MP camera","USB-C"]',1,1,1,?,?),
	  ('galaxy-s24','smartphones','Samsung Galaxy S24','Galaxy AI in a compact flagship',98000,NULL,'["/media/products/galaxy-s24.jpg"]','["Snapdragon 8 Gen 3","120Hz display"]',1,1,0,?,?),
	  ('pixel-8','smartphones','Google Pixel 8','Clean Android with the best of Google',72000,80000,'["/media/products/pixel-8.jpg"]','["Tensor G3","7 years of updates"]',1,0,1,?,?),
	  ('redmi-note-13','smartphones','Redmi Note 13','Big battery, fair price',18500,NULL,'["/media/products/redmi-note-13.jpg"]','["5000mAh","AMOLED"]',1,0,0,?,?),
	  ('tecno-spark-20','smartphones','Tecno Spark 20','Everyday phone with a 50MP camera',9800,NULL,'["/media/products/tecno-spark-20.jpg"]','["50MP camera","90Hz display"]',1,0,0,?,?),
	  ('ipad-air','tablets','iPad Air','M2 power in a thin design',89000,NULL,'["/media/products/ipad-air.jpg"]','["M2 chip","Apple Pencil support"]',0,1,0,?,?),
	  ('galaxy-buds-fe','audio','Galaxy Buds FE','Noise cancelling earbuds',7500,9000,'["/media/products/galaxy-buds-fe.jpg"]','["Active noise cancelling","IPX2"]',1,0,1,?,?),
	  ('anker-65w','accessories','Anker 65W Charger','GaN charger for phone and laptop',3200,NULL,'["/media/products/anker-65w.jpg"]','["65W","USB-C PD"]',1,0,0,?,?),
	  ('usb-c-cable','accessories','USB-C Cable 2m','Braided fast-charging cable',450,NULL,'["/media/products/usb-c-cable.jpg"]','["60W","Braided"]',1,0,0,?,?),
	  ('galaxy-watch-6','wearables','Galaxy Watch 6','Health tracking on your wrist',32000,NULL,'["/media/products/galaxy-watch-6.jpg"]','["ECG","Sleep coaching"]',1,1,0,?,?)`,
		ts, ts, ts, ts, ts, ts, ts, ts, ts, ts, ts, ts, ts, ts, ts, ts, ts, ts, ts, ts)

	tx.MustExec(`INSERT INTO services(id,title,description,icon,features_json,created_at,updated_at) VALUES
	  ('screen-repair','Screen Repair','Cracked screens replaced the same day','smartphone','["Original parts","90 day warranty"]',?,?),
	  ('battery-replacement','Battery Replacement','Get a full day of battery again','battery','["Genuine batteries","30 minute service"]',?,?),
	  ('trade-in','Trade-In','Trade your old phone for credit','refresh','["Free valuation","Instant credit"]',?,?),
	  ('data-transfer','Data Transfer','Move contacts and photos to your new phone','database','["Android and iOS","Private and secure"]',?,?)`,
		ts, ts, ts, ts, ts, ts, ts, ts)

	return tx.Commit()
}

// seedUsers ensures one admin and one customer exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-admin", "admin@mulemobile.et", "Mule Admin", "admin", "Admin123!"),
		mk("u-sara", "sara@mulemobile.et", "Sara Tesfaye", "customer", "Customer123!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	ts := now()
	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role,created_at,updated_at)
			VALUES(?,?,?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role, ts, ts); err != nil {
			return err
		}
	}

	return tx.Commit()
}
