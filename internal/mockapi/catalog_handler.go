package mockapi

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type catalogHandler struct {
	s *Server
}

func (h *catalogHandler) Products(c *fiber.Ctx) error {
	rows, err := h.s.Products.List()
	if err != nil {
		return err
	}
	out := make([]productJSON, 0, len(rows))
	for _, p := range rows {
		out = append(out, productView(p))
	}
	return c.JSON(out)
}

func (h *catalogHandler) Product(c *fiber.Ctx) error {
	p, err := h.s.Products.Get(c.Params("id"))
	if errors.Is(err, sql.ErrNoRows) {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(productView(p))
}

func (h *catalogHandler) CategoryList(c *fiber.Ctx) error {
	rows, err := h.s.Categories.List()
	if err != nil {
		return err
	}
	out := make([]categoryJSON, 0, len(rows))
	for _, cat := range rows {
		out = append(out, categoryView(cat))
	}
	return c.JSON(out)
}

func (h *catalogHandler) ServiceList(c *fiber.Ctx) error {
	rows, err := h.s.Services.List()
	if err != nil {
		return err
	}
	out := make([]serviceJSON, 0, len(rows))
	for _, sv := range rows {
		out = append(out, serviceView(sv))
	}
	return c.JSON(out)
}
