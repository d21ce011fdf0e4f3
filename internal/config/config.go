package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Supported DB_DRIVER values.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	DBDriver    string
	DatabaseDSN string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	Debug       bool
	SwaggerHost string
}

// Load builds Config from environment with sensible defaults. A .env file
// in the working directory is read first if present.
func Load() *Config {
	_ = godotenv.Load()

	driver := getEnv("DB_DRIVER", DriverMySQL)
	return &Config{
		ServerPort:  getEnv("SERVER_PORT", getEnv("PORT", "8080")),
		DBDriver:    driver,
		DatabaseDSN: getEnv("DATABASE_DSN", defaultDSN(driver)),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:   getEnv("JWT_SECRET", getEnv("SECRET_KEY", "change-me")),
		Debug:       getEnvBool("DEBUG", false),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

func defaultDSN(driver string) string {
	if driver == DriverSQLite {
		return "gradebook.db"
	}
	return "user:password@tcp(localhost:3306)/gradebook?charset=utf8mb4&parseTime=True&loc=Local"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
