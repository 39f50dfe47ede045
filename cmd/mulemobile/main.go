package main

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"mulemobile/internal/api"
	"mulemobile/internal/config"
	"mulemobile/internal/http/handlers"
	"mulemobile/internal/localstore"
	applog "mulemobile/internal/log"
	"mulemobile/web"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	cfg := config.Load()
	applog.Setup(cfg.LogLevel, cfg.LogFile)

	db, err := localstore.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	local := localstore.New(db)
	client := api.New(cfg.APIURL, cfg.APITimeout)

	// Housekeeping: forget browser sessions nobody has touched within the TTL.
	sched := cron.New()
	if _, err := sched.AddFunc("@hourly", func() {
		n, err := local.PurgeStale(cfg.SessionTTL)
		if err != nil {
			applog.Error(nil, "localstore.purge.fail", err, nil)
			return
		}
		applog.Info(nil, "localstore.purge", map[string]any{"rows": n})
	}); err != nil {
		log.Fatal(err)
	}
	sched.Start()

	app := fiber.New(fiber.Config{
		AppName:     "mulemobile",
		Views:       web.NewEngine(),
		BodyLimit:   1 << 20, // 1 MiB
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			applog.Error(c, "server.error", err, map[string]any{"code": code})
			// Avoid leaking internals; best-effort render
			if rerr := handlers.ErrorPage(c, code, "Something went wrong. Please try again."); rerr != nil {
				return c.Status(code).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || p == "/healthz" || p == "/metrics"
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return handlers.ErrorPage(c, fiber.StatusForbidden, "Security check failed. Please refresh and try again.")
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   web.Static(),
		MaxAge: 3600,
	}))
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(client, local)
	handlers.Routes(app, deps, handlers.Throttles{
		Login: limiter.New(limiter.Config{
			Max:        5,
			Expiration: 10 * time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.login.hit", nil)
				return handlers.ErrorPage(c, fiber.StatusTooManyRequests, "Too many attempts. Please try again later.")
			},
		}),
		Search: limiter.New(limiter.Config{
			Max:        60,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP() + "|search"
			},
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.search.hit", nil)
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
			},
		}),
	})
	app.Use(handlers.NotFound)

	log.Printf("[api] %s (timeout %s)", cfg.APIURL, cfg.APITimeout)
	err = app.Listen(":" + cfg.Port)
	<-sched.Stop().Done()
	if err != nil {
		log.Fatal(err)
	}
}
