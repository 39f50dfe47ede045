package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2/middleware/logger"

	"mulemobile/internal/config"
	applog "mulemobile/internal/log"
	"mulemobile/internal/mockapi"
	"mulemobile/internal/mockapi/repos"
)

func main() {
	cfg := config.LoadMock()
	applog.Setup(cfg.LogLevel, "")

	if err := os.MkdirAll(cfg.MediaDir, 0o755); err != nil {
		log.Fatal(err)
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	app := mockapi.New(db, cfg).App(logger.New())

	log.Printf("[mockapi] media %s served at %s/media", cfg.MediaDir, cfg.PublicURL)
	log.Fatal(app.Listen(":" + cfg.Port))
}
