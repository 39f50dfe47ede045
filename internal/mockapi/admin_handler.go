package mockapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "mulemobile/internal/log"
	"mulemobile/internal/mockapi/repos"
)

type adminHandler struct {
	s *Server
}

type productBody struct {
	Name          string   `json:"name"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	Features      []string `json:"features"`
	Image         []string `json:"image"`
	InStock       *bool    `json:"inStock"`
	IsNew         bool     `json:"isNew"`
	OnSale        bool     `json:"onSale"`
}

func (h *adminHandler) productFields(c *fiber.Ctx) (repos.ProductFields, string) {
	var in productBody
	if err := c.BodyParser(&in); err != nil {
		return repos.ProductFields{}, "Invalid request body"
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Price == nil || *in.Price < 0 {
		return repos.ProductFields{}, "Name and a valid price are required"
	}
	cat, err := h.s.Categories.Resolve(strings.TrimSpace(in.Category))
	if err != nil {
		return repos.ProductFields{}, "Category not found"
	}
	f := repos.ProductFields{
		CategoryID:    cat.ID,
		Name:          in.Name,
		Description:   in.Description,
		Price:         *in.Price,
		OriginalPrice: in.OriginalPrice,
		Images:        in.Image,
		Features:      in.Features,
		InStock:       in.InStock == nil || *in.InStock,
		IsNew:         in.IsNew,
		OnSale:        in.OnSale,
	}
	return f, ""
}

func (h *adminHandler) CreateProduct(c *fiber.Ctx) error {
	f, msg := h.productFields(c)
	if msg != "" {
		return fail(c, fiber.StatusBadRequest, msg)
	}
	id, err := h.s.Products.Create(f)
	if err != nil {
		return err
	}
	p, err := h.s.Products.Get(id)
	if err != nil {
		return err
	}
	applog.Audit(c, "mockapi.admin.product.create", map[string]any{"product_id": id})
	return c.Status(fiber.StatusCreated).JSON(productView(p))
}

func (h *adminHandler) UpdateProduct(c *fiber.Ctx) error {
	f, msg := h.productFields(c)
	if msg != "" {
		return fail(c, fiber.StatusBadRequest, msg)
	}
	id := c.Params("id")
	n, err := h.s.Products.Update(id, f)
	if err != nil {
		return err
	}
	if n == 0 {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	p, err := h.s.Products.Get(id)
	if err != nil {
		return err
	}
	applog.Audit(c, "mockapi.admin.product.update", map[string]any{"product_id": id})
	return c.JSON(productView(p))
}

func (h *adminHandler) DeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	n, err := h.s.Products.Delete(id)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Product is referenced by orders and cannot be deleted")
	}
	if n == 0 {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	applog.Audit(c, "mockapi.admin.product.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

type categoryBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *adminHandler) CreateCategory(c *fiber.Ctx) error {
	var in categoryBody
	if err := c.BodyParser(&in); err != nil || strings.TrimSpace(in.Name) == "" {
		return fail(c, fiber.StatusBadRequest, "Category name is required")
	}
	cat, err := h.s.Categories.Create(strings.TrimSpace(in.Name), in.Description)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Category already exists")
	}
	applog.Audit(c, "mockapi.admin.category.create", map[string]any{"category_id": cat.ID})
	return c.Status(fiber.StatusCreated).JSON(categoryView(cat))
}

func (h *adminHandler) UpdateCategory(c *fiber.Ctx) error {
	var in categoryBody
	if err := c.BodyParser(&in); err != nil || strings.TrimSpace(in.Name) == "" {
		return fail(c, fiber.StatusBadRequest, "Category name is required")
	}
	id := c.Params("id")
	n, err := h.s.Categories.Update(id, strings.TrimSpace(in.Name), in.Description)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Category already exists")
	}
	if n == 0 {
		return fail(c, fiber.StatusNotFound, "Category not found")
	}
	cat, err := h.s.Categories.Get(id)
	if err != nil {
		return err
	}
	applog.Audit(c, "mockapi.admin.category.update", map[string]any{"category_id": id})
	return c.JSON(categoryView(cat))
}

func (h *adminHandler) DeleteCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	n, err := h.s.Categories.Delete(id)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Category still has products")
	}
	if n == 0 {
		return fail(c, fiber.StatusNotFound, "Category not found")
	}
	applog.Audit(c, "mockapi.admin.category.delete", map[string]any{"category_id": id})
	return c.JSON(fiber.Map{"message": "Category deleted"})
}

type serviceBody struct {
	Title       string   `json:"title"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Features    []string `json:"features"`
}

func (b serviceBody) title() string {
	if t := strings.TrimSpace(b.Title); t != "" {
		return t
	}
	return strings.TrimSpace(b.Name)
}

func (h *adminHandler) CreateService(c *fiber.Ctx) error {
	var in serviceBody
	if err := c.BodyParser(&in); err != nil || in.title() == "" {
		return fail(c, fiber.StatusBadRequest, "Service title is required")
	}
	id, err := h.s.Services.Create(in.title(), in.Description, in.Icon, in.Features)
	if err != nil {
		return err
	}
	applog.Audit(c, "mockapi.admin.service.create", map[string]any{"service_id": id})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"_id": id, "title": in.title()})
}

func (h *adminHandler) UpdateService(c *fiber.Ctx) error {
	var in serviceBody
	if err := c.BodyParser(&in); err != nil || in.title() == "" {
		return fail(c, fiber.StatusBadRequest, "Service title is required")
	}
	id := c.Params("id")
	n, err := h.s.Services.Update(id, in.title(), in.Description, in.Icon, in.Features)
	if err != nil {
		return err
	}
	if n == 0 {
		return fail(c, fiber.StatusNotFound, "Service not found")
	}
	applog.Audit(c, "mockapi.admin.service.update", map[string]any{"service_id": id})
	return c.JSON(fiber.Map{"_id": id, "title": in.title()})
}

func (h *adminHandler) DeleteService(c *fiber.Ctx) error {
	id := c.Params("id")
	n, err := h.s.Services.Delete(id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fail(c, fiber.StatusNotFound, "Service not found")
	}
	applog.Audit(c, "mockapi.admin.service.delete", map[string]any{"service_id": id})
	return c.JSON(fiber.Map{"message": "Service deleted"})
}

func (h *adminHandler) Dashboard(c *fiber.Ctx) error {
	stats := fiber.Map{}
	for key, count := range map[string]func() (int, error){
		"totalProducts":   h.s.Products.Count,
		"totalCategories": h.s.Categories.Count,
		"totalServices":   h.s.Services.Count,
		"totalUsers":      h.s.Users.Count,
		"totalOrders":     h.s.Orders.Count,
		"totalFavorites":  h.s.Favorites.Count,
	} {
		n, err := count()
		if err != nil {
			return err
		}
		stats[key] = n
	}

	products, err := h.s.Products.Recent(5)
	if err != nil {
		return err
	}
	users, err := h.s.Users.Recent(5)
	if err != nil {
		return err
	}
	recentProducts := make([]fiber.Map, 0, len(products))
	for _, p := range products {
		recentProducts = append(recentProducts, fiber.Map{"_id": p.ID, "name": p.Name, "price": p.Price, "createdAt": p.CreatedAt})
	}
	recentUsers := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		recentUsers = append(recentUsers, fiber.Map{"_id": u.ID, "name": u.Name, "email": u.Email, "createdAt": u.CreatedAt})
	}
	return c.JSON(fiber.Map{
		"stats":  stats,
		"recent": fiber.Map{"products": recentProducts, "users": recentUsers},
	})
}
