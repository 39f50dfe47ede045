package mockapi

import (
	"database/sql"
	"errors"
	"math"

	"github.com/gofiber/fiber/v2"

	applog "mulemobile/internal/log"
)

type orderHandler struct {
	s *Server
}

func (h *orderHandler) Create(c *fiber.Ctx) error {
	var in struct {
		ProductID  string  `json:"productId"`
		Amount     int     `json:"amount"`
		TotalMoney float64 `json:"totalMoney"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if in.ProductID == "" || in.Amount < 1 {
		return fail(c, fiber.StatusBadRequest, "Product and a positive amount are required")
	}
	p, err := h.s.Products.Get(in.ProductID)
	if errors.Is(err, sql.ErrNoRows) {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	if err != nil {
		return err
	}
	if !p.InStock {
		return fail(c, fiber.StatusBadRequest, p.Name+" is out of stock")
	}
	// the client computes totals; keep them honest
	if want := p.Price * float64(in.Amount); math.Abs(want-in.TotalMoney) > 0.005 {
		applog.Security(c, "mockapi.order.total_mismatch", map[string]any{"product_id": p.ID, "client": in.TotalMoney, "server": want})
		in.TotalMoney = want
	}
	o, err := h.s.Orders.Create(userID(c), p.ID, in.Amount, in.TotalMoney)
	if err != nil {
		return err
	}
	applog.Audit(c, "mockapi.order.create", map[string]any{"order_id": o.ID, "product_id": p.ID, "amount": o.Amount})
	return c.Status(fiber.StatusCreated).JSON(orderView(o, nil, nil))
}

// Mine returns the caller's orders with the product populated.
func (h *orderHandler) Mine(c *fiber.Ctx) error {
	rows, err := h.s.Orders.ListByUser(userID(c))
	if err != nil {
		return err
	}
	products := map[string]any{}
	out := make([]orderJSON, 0, len(rows))
	for _, o := range rows {
		out = append(out, orderView(o, h.product(products, o.ProductID), nil))
	}
	return c.JSON(out)
}

// All returns every order with user and product populated.
func (h *orderHandler) All(c *fiber.Ctx) error {
	rows, err := h.s.Orders.ListLatest(0)
	if err != nil {
		return err
	}
	products := map[string]any{}
	users := map[string]any{}
	out := make([]orderJSON, 0, len(rows))
	for _, o := range rows {
		out = append(out, orderView(o, h.product(products, o.ProductID), h.user(users, o.UserID)))
	}
	return c.JSON(out)
}

// product returns the populated product, or nil when it is gone so the
// order falls back to the bare id.
func (h *orderHandler) product(cache map[string]any, id string) any {
	if v, ok := cache[id]; ok {
		return v
	}
	var v any
	if p, err := h.s.Products.Get(id); err == nil {
		v = productView(p)
	}
	cache[id] = v
	return v
}

func (h *orderHandler) user(cache map[string]any, id string) any {
	if v, ok := cache[id]; ok {
		return v
	}
	var v any
	if u, err := h.s.Users.ByID(id); err == nil {
		v = userView(*u)
	}
	cache[id] = v
	return v
}
