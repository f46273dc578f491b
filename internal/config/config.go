package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	AppHost  string
	HTTPPort string
	AppEnv   string
	LogLevel string

	// DataDir — каталог с локальной базой (одно устройство — один файл).
	DataDir string

	// PhoneRegion — регион по умолчанию для разбора телефонов поставщиков.
	PhoneRegion string

	// CORSAllowedOrigins — список origin'ов через запятую; пустой в
	// development означает "разрешить всё".
	CORSAllowedOrigins string
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg := &Config{
		AppHost:            getEnv("APP_HOST", "127.0.0.1"),
		HTTPPort:           firstEnv("APP_PORT", "HTTP_PORT", "8085"),
		AppEnv:             getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DataDir:            getEnv("DATA_DIR", "data"),
		PhoneRegion:        getEnv("PHONE_REGION", "US"),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", ""),
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("config: DATA_DIR is required")
	}
	if c.AppEnv == "production" && c.CORSAllowedOrigins == "" {
		return errors.New("config: in production CORS_ALLOWED_ORIGINS is required")
	}
	return nil
}

// DBPath — путь к файлу SQLite внутри DataDir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "workorders.db")
}

func (c *Config) Addr() string {
	return c.AppHost + ":" + c.HTTPPort
}

func firstEnv(keysAndDef ...string) string {
	if len(keysAndDef) == 0 {
		return ""
	}
	def := keysAndDef[len(keysAndDef)-1]
	for _, k := range keysAndDef[:len(keysAndDef)-1] {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
