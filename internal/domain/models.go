package domain

import "time"

// CategoryRef is the normalized form of a product's category, which the API
// returns either as a bare name or as a populated {_id, name} object.
type CategoryRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Product struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Price         float64     `json:"price"` // ETB
	OriginalPrice *float64    `json:"originalPrice,omitempty"`
	Images        []string    `json:"image"` // first is primary
	Category      CategoryRef `json:"category"`
	Description   string      `json:"description"`
	Features      []string    `json:"features"`
	InStock       bool        `json:"inStock"`
	IsNew         bool        `json:"isNew,omitempty"`
	OnSale        bool        `json:"onSale,omitempty"`
}

func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// CartLine is a product snapshot plus quantity. It serializes flat, the
// product fields next to "quantity".
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

func (l CartLine) Subtotal() float64 { return l.Price * float64(l.Quantity) }

type Service struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon,omitempty"`
	Features    []string  `json:"features"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Product   Product   `json:"product"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductRef and UserRef are what an order points at. Only ID is guaranteed;
// the rest is filled when the API populated the reference.
type ProductRef struct {
	ID       string      `json:"id"`
	Name     string      `json:"name,omitempty"`
	Price    float64     `json:"price,omitempty"`
	Images   []string    `json:"image,omitempty"`
	Category CategoryRef `json:"category"`
}

type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Order is one persisted order line. TotalMoney is quantity x unit price,
// tax exclusive.
type Order struct {
	ID         string     `json:"id"`
	Product    ProductRef `json:"product"`
	User       UserRef    `json:"user"`
	Amount     int        `json:"amount"`
	TotalMoney float64    `json:"totalMoney"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type DashboardStats struct {
	TotalProducts   int `json:"totalProducts"`
	TotalCategories int `json:"totalCategories"`
	TotalServices   int `json:"totalServices"`
	TotalUsers      int `json:"totalUsers"`
	TotalOrders     int `json:"totalOrders"`
	TotalFavorites  int `json:"totalFavorites"`
}

type RecentProduct struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

type RecentUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type Dashboard struct {
	Stats          DashboardStats  `json:"stats"`
	RecentProducts []RecentProduct `json:"recentProducts"`
	RecentUsers    []RecentUser    `json:"recentUsers"`
}
