package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port       string        `envconfig:"PORT" default:"8081"`
	APIURL     string        `envconfig:"API_URL" default:"http://localhost:5000"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
	DBDSN      string        `envconfig:"DB_DSN" default:"mulemobile.db"` // sqlite file in project root
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"720h"`
	LogFile    string        `envconfig:"LOG_FILE"`
	LogLevel   string        `envconfig:"LOG_LEVEL" default:"info"`
}

// MockConfig configures the development backend in cmd/mockapi.
type MockConfig struct {
	Port      string `envconfig:"MOCK_PORT" default:"5000"`
	DBDSN     string `envconfig:"MOCK_DB_DSN" default:"mockapi.db"`
	MediaDir  string `envconfig:"MEDIA_DIR" default:"./web/media"`
	PublicURL string `envconfig:"PUBLIC_URL" default:"http://localhost:5000"`
	JWTSecret string `envconfig:"JWT_SECRET" default:"change-me-in-production"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
}

func loadDotenv() {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file, using environment and defaults")
	}
}

func Load() Config {
	loadDotenv()
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("[config] %v", err)
	}
	log.Printf("[config] PORT=%s API_URL=%s DB_DSN=%s LOG_FILE=%s", cfg.Port, cfg.APIURL, cfg.DBDSN, cfg.LogFile)
	return cfg
}

func LoadMock() MockConfig {
	loadDotenv()
	var cfg MockConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("[config] %v", err)
	}
	log.Printf("[config] MOCK_PORT=%s MOCK_DB_DSN=%s MEDIA_DIR=%s", cfg.Port, cfg.DBDSN, cfg.MediaDir)
	return cfg
}
