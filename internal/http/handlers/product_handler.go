package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"mulemobile/internal/log"
	"mulemobile/internal/store"
	"mulemobile/internal/validate"
)

const (
	relatedOnProduct = 4
	typeAheadResults = 5
)

type ProductHandler struct {
	Catalog *store.Catalog
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return notFound(c, fiber.StatusNotFound, "This item is no longer available")
	}
	products, err := h.Catalog.Products()
	if err != nil {
		return notFound(c, fiber.StatusBadGateway, "Could not load this product. Please retry.")
	}
	p, found := store.FindProduct(products, id)
	if !found {
		return notFound(c, fiber.StatusNotFound, "This item is no longer available")
	}
	data := fiber.Map{
		"Title":    p.Name,
		"Product":  p,
		"Discount": store.DiscountPercent(p.Price, p.OriginalPrice),
		"Related":  store.Related(p, products, relatedOnProduct),
	}
	if s := current(c); s != nil && s.Auth.Token() != "" {
		data["IsFavorite"] = s.Favorites.CheckIsFavorite(p.ID)
	}
	return render(c, "product", data)
}

type searchHit struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

// Search backs the navbar type-ahead: the first few matches plus the total.
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	text := c.Query("q")
	if strings.TrimSpace(text) != "" {
		var ok bool
		if text, ok = validate.Q(text); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "search too long"})
		}
	}
	products, err := h.Catalog.Products()
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "catalog unavailable"})
	}
	matches := store.TypeAhead(products, text)
	hits := make([]searchHit, 0, typeAheadResults)
	for i, p := range matches {
		if i == typeAheadResults {
			break
		}
		hits = append(hits, searchHit{
			ID:       p.ID,
			Name:     p.Name,
			Price:    store.FormatETB(p.Price),
			Image:    p.PrimaryImage(),
			Category: p.Category.Name,
		})
	}
	return c.JSON(fiber.Map{"results": hits, "total": len(matches)})
}
