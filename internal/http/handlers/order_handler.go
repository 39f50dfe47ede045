package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"mulemobile/internal/api"
	applog "mulemobile/internal/log"
	"mulemobile/internal/store"
)

type OrderHandler struct{}

// Checkout submits one order per cart line. The cart is cleared only when
// every order went through.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	s := current(c)
	lines := s.Cart.Lines()
	if len(lines) == 0 {
		return c.Redirect("/cart")
	}
	if err := s.Orders.SubmitCart(lines); err != nil {
		if errors.Is(err, store.ErrNoSession) {
			return c.Redirect("/login")
		}
		applog.Error(c, "order.submit.fail", err, map[string]any{"lines": len(lines)})
		return render(c.Status(failureStatus(err)), "cart", fiber.Map{
			"Title":  "Cart",
			"Lines":  lines,
			"Totals": store.TotalsOf(lines),
			"Err":    s.Orders.LastError(),
		})
	}
	totals := store.TotalsOf(lines)
	s.Cart.Clear()
	applog.Audit(c, "order.submit", map[string]any{
		"lines":    len(lines),
		"items":    totals.Items,
		"subtotal": totals.Subtotal,
	})
	return c.Redirect("/profile?ordered=1")
}

// History renders the profile page with the caller's orders.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	s := current(c)
	data := fiber.Map{"Title": "Profile"}
	orders, err := s.Orders.FetchMine()
	if err != nil {
		applog.Error(c, "orders.mine.fail", err, nil)
		data["Err"] = s.Orders.LastError()
	}
	if c.Query("ordered") != "" {
		data["Msg"] = "Thank you! Your order has been placed."
	}
	data["Orders"] = orders
	return render(c, "profile", data)
}

// failureStatus maps an API failure onto the status of the page we render.
func failureStatus(err error) int {
	if st := api.StatusOf(err); st >= 400 && st < 500 {
		return st
	}
	return fiber.StatusBadGateway
}
