package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"mulemobile/internal/log"
	"mulemobile/internal/store"
	"mulemobile/internal/validate"
)

const featuredOnHome = 8

type CatalogHandler struct {
	Catalog *store.Catalog
}

func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	data := fiber.Map{}
	products, err := h.Catalog.Products()
	if err != nil {
		data["Err"] = "Could not load products. Please retry."
	}
	featured := store.Featured(products)
	if len(featured) > featuredOnHome {
		featured = featured[:featuredOnHome]
	}
	services, _ := h.Catalog.Services()
	data["Featured"] = featured
	data["Services"] = services
	return render(c, "home", data)
}

// Shop renders the catalog through the query pipeline. Filters come from the
// URL so result pages can be linked.
func (h *CatalogHandler) Shop(c *fiber.Ctx) error {
	q := store.Query{
		Category: strings.TrimSpace(c.Query("category", store.CategoryAll)),
		Price:    store.ParsePriceBucket(c.Query("price")),
		Sort:     store.ParseSortKey(c.Query("sort")),
	}
	status := fiber.StatusOK
	var msg string
	if raw := c.Query("search"); strings.TrimSpace(raw) != "" {
		text, ok := validate.Q(raw)
		if !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "search", "value": raw})
			status, msg = fiber.StatusBadRequest, "Search must be 80 characters or fewer"
		} else {
			q.Text = text
		}
	}
	if q.Category == "" {
		q.Category = store.CategoryAll
	}

	products, err := h.Catalog.Products()
	if err != nil {
		status, msg = fiber.StatusBadGateway, "Could not load products. Please retry."
	}
	visible := store.Filter(products, q)
	return render(c.Status(status), "shop", fiber.Map{
		"Title":        "Shop",
		"Query":        q,
		"SearchText":   q.Text,
		"Products":     visible,
		"Total":        len(products),
		"Categories":   h.Catalog.CategoryNames(products),
		"PriceBuckets": store.PriceBuckets,
		"SortKeys":     store.SortKeys,
		"Active":       q.ActiveFilters(),
		"Err":          msg,
	})
}

func (h *CatalogHandler) Services(c *fiber.Ctx) error {
	services, err := h.Catalog.Services()
	data := fiber.Map{"Title": "Services", "Services": services}
	if err != nil {
		data["Err"] = "Could not load services. Please retry."
	}
	return render(c, "services", data)
}

func (h *CatalogHandler) About(c *fiber.Ctx) error {
	return render(c, "about", fiber.Map{"Title": "About"})
}

func (h *CatalogHandler) Contact(c *fiber.Ctx) error {
	return render(c, "contact", fiber.Map{"Title": "Contact"})
}
