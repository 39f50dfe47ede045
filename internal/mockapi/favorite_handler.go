package mockapi

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "mulemobile/internal/log"
	"mulemobile/internal/mockapi/repos"
)

type favoriteHandler struct {
	s *Server
}

func (h *favoriteHandler) view(f repos.FavoriteRow) (favoriteJSON, error) {
	p, err := h.s.Products.Get(f.ProductID)
	if err != nil {
		return favoriteJSON{}, err
	}
	return favoriteJSON{ID: f.ID, User: f.UserID, Product: productView(p), CreatedAt: f.CreatedAt, UpdatedAt: f.UpdatedAt}, nil
}

func (h *favoriteHandler) List(c *fiber.Ctx) error {
	rows, err := h.s.Favorites.List(userID(c))
	if err != nil {
		return err
	}
	out := make([]favoriteJSON, 0, len(rows))
	for _, f := range rows {
		v, err := h.view(f)
		if err != nil {
			return err
		}
		out = append(out, v)
	}
	return c.JSON(out)
}

func (h *favoriteHandler) Add(c *fiber.Ctx) error {
	var in struct {
		ProductID string `json:"productId"`
	}
	if err := c.BodyParser(&in); err != nil || in.ProductID == "" {
		return fail(c, fiber.StatusBadRequest, "Product ID is required")
	}
	if _, err := h.s.Products.Get(in.ProductID); errors.Is(err, sql.ErrNoRows) {
		return fail(c, fiber.StatusNotFound, "Product not found")
	} else if err != nil {
		return err
	}
	row, added, err := h.s.Favorites.Add(userID(c), in.ProductID)
	if err != nil {
		return err
	}
	if !added {
		return fail(c, fiber.StatusBadRequest, "Product already in favorites")
	}
	v, err := h.view(row)
	if err != nil {
		return err
	}
	applog.Audit(c, "mockapi.favorite.add", map[string]any{"product_id": in.ProductID})
	return c.Status(fiber.StatusCreated).JSON(v)
}

func (h *favoriteHandler) Remove(c *fiber.Ctx) error {
	pid := c.Params("productId")
	n, err := h.s.Favorites.Remove(userID(c), pid)
	if err != nil {
		return err
	}
	if n == 0 {
		return fail(c, fiber.StatusNotFound, "Favorite not found")
	}
	applog.Audit(c, "mockapi.favorite.remove", map[string]any{"product_id": pid})
	return c.JSON(fiber.Map{"message": "Removed from favorites"})
}

func (h *favoriteHandler) Check(c *fiber.Ctx) error {
	ok, err := h.s.Favorites.Exists(userID(c), c.Params("productId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"isFavorite": ok})
}
