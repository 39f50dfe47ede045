package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mulemobile/internal/store"
)

const sessionLocal = "session"

// Session is the per-request view of one browser session: its stores are
// rehydrated from local storage and write back on every mutation.
type Session struct {
	ID        string
	Cart      *store.Cart
	Auth      *store.Auth
	Favorites *store.Favorites
	Orders    *store.Orders
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if _, err := uuid.Parse(sid); err != nil {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable true behind TLS
		})
	}
	return sid
}

// LoadSession attaches the session bundle, and the signed-in user if any,
// to the request. Requests that may write hold the session lock from the
// first read until the handler returns.
func (d *Deps) LoadSession(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if !readOnly(c.Method()) {
		defer d.Local.Lock(sid)()
	}
	storage := d.Local.Scope(sid)
	auth := store.NewAuth(d.API, storage)
	c.Locals(sessionLocal, &Session{
		ID:        sid,
		Cart:      store.NewCart(storage),
		Auth:      auth,
		Favorites: store.NewFavorites(d.API, auth),
		Orders:    store.NewOrders(d.API, auth),
	})
	if u, ok := auth.Session(); ok {
		c.Locals("user", u)
		c.Locals("user_id", u.ID)
	}
	return c.Next()
}

func readOnly(method string) bool {
	return method == fiber.MethodGet || method == fiber.MethodHead || method == fiber.MethodOptions
}

func current(c *fiber.Ctx) *Session {
	s, _ := c.Locals(sessionLocal).(*Session)
	return s
}
