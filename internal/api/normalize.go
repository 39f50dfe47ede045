package api

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/tidwall/gjson"

	"mulemobile/internal/domain"
)

// The API is loose about shapes: ids come as "_id" or "id", categories as a
// bare name or a populated object, order references as an id or a populated
// document. Everything is folded into the domain types here so nothing past
// this file has to care.

func idOf(r gjson.Result) string {
	if r.Type == gjson.String {
		return r.String()
	}
	if id := r.Get("_id").String(); id != "" {
		return id
	}
	return r.Get("id").String()
}

func stringList(r gjson.Result) []string {
	out := []string{}
	r.ForEach(func(_, v gjson.Result) bool {
		if s := v.String(); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}

func timeOf(r gjson.Result) time.Time {
	s := r.String()
	if s == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func categoryRef(r gjson.Result) domain.CategoryRef {
	switch {
	case r.IsObject():
		return domain.CategoryRef{ID: idOf(r), Name: r.Get("name").String()}
	case r.Type == gjson.String:
		return domain.CategoryRef{Name: r.String()}
	}
	return domain.CategoryRef{}
}

func productOf(r gjson.Result) domain.Product {
	p := domain.Product{
		ID:          idOf(r),
		Name:        r.Get("name").String(),
		Price:       r.Get("price").Float(),
		Images:      stringList(r.Get("image")),
		Category:    categoryRef(r.Get("category")),
		Description: r.Get("description").String(),
		Features:    stringList(r.Get("features")),
		InStock:     r.Get("inStock").Bool(),
		IsNew:       r.Get("isNew").Bool(),
		OnSale:      r.Get("onSale").Bool(),
	}
	if op := r.Get("originalPrice"); op.Type == gjson.Number {
		v := op.Float()
		p.OriginalPrice = &v
	}
	return p
}

func categoryOf(r gjson.Result) domain.Category {
	return domain.Category{
		ID:          idOf(r),
		Name:        r.Get("name").String(),
		Description: r.Get("description").String(),
		CreatedAt:   timeOf(r.Get("createdAt")),
	}
}

func serviceOf(r gjson.Result) domain.Service {
	name := r.Get("title").String()
	if name == "" {
		name = r.Get("name").String()
	}
	return domain.Service{
		ID:          idOf(r),
		Name:        name,
		Description: r.Get("description").String(),
		Icon:        r.Get("icon").String(),
		Features:    stringList(r.Get("features")),
		CreatedAt:   timeOf(r.Get("createdAt")),
	}
}

func favoriteOf(r gjson.Result) domain.Favorite {
	return domain.Favorite{
		ID:        idOf(r),
		UserID:    idOf(r.Get("user")),
		Product:   productOf(r.Get("product")),
		CreatedAt: timeOf(r.Get("createdAt")),
		UpdatedAt: timeOf(r.Get("updatedAt")),
	}
}

func orderOf(r gjson.Result) domain.Order {
	pr := r.Get("productId")
	ur := r.Get("userId")
	o := domain.Order{
		ID:         idOf(r),
		Product:    domain.ProductRef{ID: idOf(pr)},
		User:       domain.UserRef{ID: idOf(ur)},
		Amount:     int(r.Get("amount").Int()),
		TotalMoney: r.Get("totalMoney").Float(),
		CreatedAt:  timeOf(r.Get("createdAt")),
		UpdatedAt:  timeOf(r.Get("updatedAt")),
	}
	if pr.IsObject() {
		o.Product.Name = pr.Get("name").String()
		o.Product.Price = pr.Get("price").Float()
		o.Product.Images = stringList(pr.Get("image"))
		o.Product.Category = categoryRef(pr.Get("category"))
	}
	if ur.IsObject() {
		o.User.Name = ur.Get("name").String()
		o.User.Email = ur.Get("email").String()
	}
	return o
}

func userOf(r gjson.Result) domain.User {
	u := domain.User{
		ID:        idOf(r),
		Name:      r.Get("name").String(),
		Email:     r.Get("email").String(),
		Phone:     r.Get("phone").String(),
		Role:      r.Get("role").String(),
		CreatedAt: r.Get("createdAt").String(),
	}
	if u.Role == "" {
		u.Role = domain.RoleCustomer
	}
	return u
}

func dashboardOf(r gjson.Result) domain.Dashboard {
	s := r.Get("stats")
	d := domain.Dashboard{
		Stats: domain.DashboardStats{
			TotalProducts:   int(s.Get("totalProducts").Int()),
			TotalCategories: int(s.Get("totalCategories").Int()),
			TotalServices:   int(s.Get("totalServices").Int()),
			TotalUsers:      int(s.Get("totalUsers").Int()),
			TotalOrders:     int(s.Get("totalOrders").Int()),
			TotalFavorites:  int(s.Get("totalFavorites").Int()),
		},
		RecentProducts: []domain.RecentProduct{},
		RecentUsers:    []domain.RecentUser{},
	}
	r.Get("recent.products").ForEach(func(_, v gjson.Result) bool {
		d.RecentProducts = append(d.RecentProducts, domain.RecentProduct{
			ID:        idOf(v),
			Name:      v.Get("name").String(),
			Price:     v.Get("price").Float(),
			CreatedAt: timeOf(v.Get("createdAt")),
		})
		return true
	})
	r.Get("recent.users").ForEach(func(_, v gjson.Result) bool {
		d.RecentUsers = append(d.RecentUsers, domain.RecentUser{
			ID:        idOf(v),
			Name:      v.Get("name").String(),
			Email:     v.Get("email").String(),
			CreatedAt: timeOf(v.Get("createdAt")),
		})
		return true
	})
	return d
}

func mapArray[T any](r gjson.Result, fn func(gjson.Result) T) []T {
	out := make([]T, 0, len(r.Array()))
	r.ForEach(func(_, v gjson.Result) bool {
		out = append(out, fn(v))
		return true
	})
	return out
}
