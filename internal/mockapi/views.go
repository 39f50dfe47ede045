package mockapi

import "mulemobile/internal/mockapi/repos"

// Response shapes follow the storefront API: "_id" keys, camelCase fields,
// populated references where the client expects them.

type categoryJSON struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

type productJSON struct {
	ID            string       `json:"_id"`
	Name          string       `json:"name"`
	Price         float64      `json:"price"`
	OriginalPrice *float64     `json:"originalPrice,omitempty"`
	Image         []string     `json:"image"`
	Category      categoryJSON `json:"category"`
	Description   string       `json:"description"`
	Features      []string     `json:"features"`
	InStock       bool         `json:"inStock"`
	IsNew         bool         `json:"isNew"`
	OnSale        bool         `json:"onSale"`
	CreatedAt     string       `json:"createdAt"`
	UpdatedAt     string       `json:"updatedAt"`
}

type serviceJSON struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon,omitempty"`
	Features    []string `json:"features"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

type userJSON struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type favoriteJSON struct {
	ID        string      `json:"_id"`
	User      string      `json:"user"`
	Product   productJSON `json:"product"`
	CreatedAt string      `json:"createdAt"`
	UpdatedAt string      `json:"updatedAt"`
}

// orderJSON carries productId/userId either as a bare id or populated.
type orderJSON struct {
	ID         string  `json:"_id"`
	ProductID  any     `json:"productId"`
	UserID     any     `json:"userId"`
	Amount     int     `json:"amount"`
	TotalMoney float64 `json:"totalMoney"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

func categoryView(c repos.CategoryRow) categoryJSON {
	return categoryJSON{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func productView(p repos.ProductRow) productJSON {
	v := productJSON{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Images(),
		Category:    categoryJSON{ID: p.CategoryID, Name: p.CategoryName},
		Description: p.Description,
		Features:    p.Features(),
		InStock:     p.InStock,
		IsNew:       p.IsNew,
		OnSale:      p.OnSale,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.OriginalPrice.Valid {
		op := p.OriginalPrice.Float64
		v.OriginalPrice = &op
	}
	return v
}

func serviceView(s repos.ServiceRow) serviceJSON {
	return serviceJSON{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Icon:        s.Icon,
		Features:    s.Features(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func userView(u repos.UserRow) userJSON {
	return userJSON{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: u.Role, CreatedAt: u.CreatedAt}
}

func orderView(o repos.OrderRow, product, user any) orderJSON {
	if product == nil {
		product = o.ProductID
	}
	if user == nil {
		user = o.UserID
	}
	return orderJSON{
		ID:         o.ID,
		ProductID:  product,
		UserID:     user,
		Amount:     o.Amount,
		TotalMoney: o.TotalMoney,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}
