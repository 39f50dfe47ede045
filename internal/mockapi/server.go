// Package mockapi is a development implementation of the storefront REST API
// on SQLite. It backs local runs and end-to-end tests of the storefront.
package mockapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"mulemobile/internal/config"
	applog "mulemobile/internal/log"
	"mulemobile/internal/mockapi/repos"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Server struct {
	cfg        config.MockConfig
	Auth       *AuthService
	Users      *repos.UserRepo
	Categories *repos.CategoryRepo
	Products   *repos.ProductRepo
	Services   *repos.ServiceRepo
	Favorites  *repos.FavoriteRepo
	Orders     *repos.OrderRepo
}

func New(db *sqlx.DB, cfg config.MockConfig) *Server {
	users := repos.NewUserRepo(db)
	return &Server{
		cfg:        cfg,
		Auth:       NewAuthService(users, cfg.JWTSecret),
		Users:      users,
		Categories: repos.NewCategoryRepo(db),
		Products:   repos.NewProductRepo(db),
		Services:   repos.NewServiceRepo(db),
		Favorites:  repos.NewFavoriteRepo(db),
		Orders:     repos.NewOrderRepo(db),
	}
}

// App builds the fiber app with the full route table. Extra middleware runs
// before every route.
func (s *Server) App(middleware ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:     "mulemobile-mockapi",
		BodyLimit:   8 << 20, // image uploads
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "Server error"
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code, msg = fe.Code, fe.Message
			}
			if code >= fiber.StatusInternalServerError {
				applog.Error(c, "mockapi.error", err, nil)
			}
			return fail(c, code, msg)
		},
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	for _, m := range middleware {
		app.Use(m)
	}

	app.Static("/media", s.cfg.MediaDir)

	authH := &authHandler{auth: s.Auth}
	app.Post("/auth/register", authH.Register)
	app.Post("/auth/login", authH.Login)

	catalog := &catalogHandler{s: s}
	app.Get("/products", catalog.Products)
	app.Get("/products/:id", catalog.Product)
	app.Get("/categories", catalog.CategoryList)
	app.Get("/services", catalog.ServiceList)

	requireToken := RequireToken(s.Auth)

	fav := &favoriteHandler{s: s}
	favs := app.Group("/favorites", requireToken)
	favs.Get("/", fav.List)
	favs.Post("/", fav.Add)
	favs.Get("/:productId/check", fav.Check)
	favs.Delete("/:productId", fav.Remove)

	ord := &orderHandler{s: s}
	orders := app.Group("/orders", requireToken)
	orders.Post("/", ord.Create)
	orders.Get("/", ord.Mine)
	orders.Get("/getallorders", RequireAdmin, ord.All)

	adm := &adminHandler{s: s}
	admin := app.Group("/admin", requireToken, RequireAdmin)
	admin.Get("/dashboard", adm.Dashboard)
	admin.Get("/products", catalog.Products)
	admin.Post("/products", adm.CreateProduct)
	admin.Put("/products/:id", adm.UpdateProduct)
	admin.Delete("/products/:id", adm.DeleteProduct)
	admin.Get("/categories", catalog.CategoryList)
	admin.Post("/categories", adm.CreateCategory)
	admin.Put("/categories/:id", adm.UpdateCategory)
	admin.Delete("/categories/:id", adm.DeleteCategory)
	admin.Get("/services", catalog.ServiceList)
	admin.Post("/services", adm.CreateService)
	admin.Put("/services/:id", adm.UpdateService)
	admin.Delete("/services/:id", adm.DeleteService)

	up := &uploadHandler{mediaDir: s.cfg.MediaDir, publicURL: s.cfg.PublicURL}
	app.Post("/upload/images", requireToken, RequireAdmin, up.Images)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return fail(c, fiber.StatusNotFound, "Route not found")
	})
	return app
}
