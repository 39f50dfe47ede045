package handlers

import "github.com/gofiber/fiber/v2"

// Throttles are per-route rate limiters; nil entries are skipped.
type Throttles struct {
	Login  fiber.Handler
	Search fiber.Handler
}

func passthrough(c *fiber.Ctx) error { return c.Next() }

func orPass(h fiber.Handler) fiber.Handler {
	if h == nil {
		return passthrough
	}
	return h
}

// Routes registers the storefront route table. Global middleware (request id,
// access log, CSRF, static files) is the caller's business.
func Routes(app *fiber.App, d *Deps, t Throttles) {
	app.Use(d.LoadSession)

	// Public pages
	app.Get("/", d.CatalogHandler.Home)
	app.Get("/shop", d.CatalogHandler.Shop)
	app.Get("/services", d.CatalogHandler.Services)
	app.Get("/about", d.CatalogHandler.About)
	app.Get("/contact", d.CatalogHandler.Contact)
	app.Get("/product", func(c *fiber.Ctx) error {
		return notFound(c, fiber.StatusNotFound, "This item is no longer available")
	})
	app.Get("/product/:id", d.ProductHandler.Detail)
	app.Get("/api/search", orPass(t.Search), d.ProductHandler.Search)

	// Cart & checkout
	app.Get("/cart", d.CartHandler.View)
	app.Post("/cart", d.CartHandler.Add)
	app.Post("/cart/quantity", d.CartHandler.Quantity)
	app.Post("/cart/remove", d.CartHandler.Remove)
	app.Post("/cart/clear", d.CartHandler.Clear)
	app.Post("/checkout", RequireUser, d.OrderHandler.Checkout)

	// Account
	app.Get("/login", d.AuthHandler.LoginForm)
	app.Post("/login", orPass(t.Login), d.AuthHandler.Login)
	app.Post("/signup", orPass(t.Login), d.AuthHandler.Signup)
	app.Post("/logout", d.AuthHandler.Logout)
	app.Get("/profile", RequireUser, d.OrderHandler.History)

	// Favorites
	app.Get("/favorites", RequireUser, d.FavoritesHandler.List)
	app.Post("/favorites", RequireUser, d.FavoritesHandler.Save)
	app.Post("/favorites/delete", RequireUser, d.FavoritesHandler.Unsave)

	// Admin
	admin := app.Group("/admin", RequireAdmin)
	adm := d.AdminHandler
	admin.Get("/", adm.Dashboard)
	admin.Get("/orders", adm.OrdersPage)
	admin.Get("/users", adm.UsersPage)
	admin.Get("/products", adm.ProductsPage)
	admin.Post("/products", adm.CreateProduct)
	admin.Post("/products/:id", adm.UpdateProduct)
	admin.Post("/products/:id/delete", adm.DeleteProduct)
	admin.Get("/categories", adm.CategoriesPage)
	admin.Post("/categories", adm.CreateCategory)
	admin.Post("/categories/:id", adm.UpdateCategory)
	admin.Post("/categories/:id/delete", adm.DeleteCategory)
	admin.Get("/services", adm.ServicesPage)
	admin.Post("/services", adm.CreateService)
	admin.Post("/services/:id", adm.UpdateService)
	admin.Post("/services/:id/delete", adm.DeleteService)
	admin.Post("/upload", adm.Upload)
}

// NotFound is the catch-all registered after every other route.
func NotFound(c *fiber.Ctx) error {
	return notFound(c, fiber.StatusNotFound, "Page not found")
}
