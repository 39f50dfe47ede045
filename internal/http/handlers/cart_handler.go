package handlers

import (
	"github.com/gofiber/fiber/v2"

	"mulemobile/internal/log"
	"mulemobile/internal/store"
	"mulemobile/internal/validate"
)

type CartHandler struct {
	Catalog *store.Catalog
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	return h.page(c, fiber.StatusOK, "")
}

func (h *CartHandler) page(c *fiber.Ctx, status int, errMsg string) error {
	cart := current(c).Cart
	return render(c.Status(status), "cart", fiber.Map{
		"Title":  "Cart",
		"Lines":  cart.Lines(),
		"Totals": cart.Totals(),
		"Err":    errMsg,
	})
}

// Add puts a fresh snapshot of the product into the cart.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	p, found, err := h.Catalog.Product(id)
	if err != nil {
		return h.page(c, fiber.StatusBadGateway, "Could not reach the store. Please retry.")
	}
	if !found {
		return notFound(c, fiber.StatusNotFound, "This item is no longer available")
	}
	if !p.InStock {
		return h.page(c, fiber.StatusConflict, p.Name+" is out of stock")
	}
	current(c).Cart.Add(p)
	log.Info(c, "cart.add", map[string]any{"product": p.ID})
	return c.Redirect("/cart")
}

func (h *CartHandler) Quantity(c *fiber.Ctx) error {
	id, okID := validate.ID(c.FormValue("productId"))
	qty, okQty := validate.Qty(c.FormValue("qty"))
	if !okID || !okQty {
		log.Security(c, "validation.fail", map[string]any{"field": "qty"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid quantity")
	}
	current(c).Cart.SetQuantity(id, qty)
	log.Info(c, "cart.quantity", map[string]any{"product": id, "qty": qty})
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	current(c).Cart.Remove(id)
	log.Info(c, "cart.remove", map[string]any{"product": id})
	return c.Redirect("/cart")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	current(c).Cart.Clear()
	log.Info(c, "cart.clear", nil)
	return c.Redirect("/cart")
}
