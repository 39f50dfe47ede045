package handlers

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "mulemobile/internal/log"
	"mulemobile/internal/validate"
)

type FavoritesHandler struct{}

func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	s := current(c)
	data := fiber.Map{"Title": "Favorites"}
	if err := s.Favorites.FetchAll(); err != nil {
		applog.Error(c, "favorites.list.fail", err, nil)
		data["Err"] = s.Favorites.LastError()
	}
	data["Favorites"] = s.Favorites.Items()
	return render(c, "favorites", data)
}

func (h *FavoritesHandler) Save(c *fiber.Ctx) error {
	s := current(c)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	if err := s.Favorites.Add(pid); err != nil {
		applog.Error(c, "favorites.add.fail", err, map[string]any{"product": pid})
		return h.failed(c, err)
	}
	applog.Audit(c, "favorites.add", map[string]any{"product": pid})
	return c.Redirect(back(c, "/product/"+pid))
}

func (h *FavoritesHandler) Unsave(c *fiber.Ctx) error {
	s := current(c)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	if err := s.Favorites.Remove(pid); err != nil {
		applog.Error(c, "favorites.remove.fail", err, map[string]any{"product": pid})
		return h.failed(c, err)
	}
	applog.Audit(c, "favorites.remove", map[string]any{"product": pid})
	return c.Redirect(back(c, "/favorites"))
}

// failed shows the favorites page with the store's error message.
func (h *FavoritesHandler) failed(c *fiber.Ctx, err error) error {
	s := current(c)
	msg := s.Favorites.LastError()
	_ = s.Favorites.FetchAll()
	return render(c.Status(failureStatus(err)), "favorites", fiber.Map{
		"Title":     "Favorites",
		"Favorites": s.Favorites.Items(),
		"Err":       msg,
	})
}

// back returns the local page the request came from, or fallback.
func back(c *fiber.Ctx, fallback string) string {
	u, err := url.Parse(c.Get(fiber.HeaderReferer))
	if err != nil || u.Path == "" || !strings.HasPrefix(u.Path, "/") {
		return fallback
	}
	if u.Host != "" && u.Host != c.Hostname() {
		return fallback
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
