package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything the services read from the environment.
type Config struct {
	// Store selection: "redis" (default) or "postgres".
	StoreDriver string
	RedisURL    string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	// APISecret signs the service-to-service bearer tokens for the API.
	APISecret string

	ListenAddr string
	Timezone   string

	LogLevel string
	LogFile  string
}

// DutyTypes maps short duty aliases used by command surfaces to the
// canonical duty task names stored in the catalog.
var DutyTypes = map[string]string{
	"fin":          "FIN-DUTY",
	"asana":        "ASANA-DUTY",
	"tg":           "TG-DUTY",
	"notification": "NOTIFICATION-DUTY",
	"supervision":  "SUPERVISION-DUTY",
}

func Load() *Config {

	port, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil {
		port = 5432 // fallback
	}

	driver := os.Getenv("STORE_DRIVER")
	if driver == "" {
		driver = "redis"
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	tz := os.Getenv("TIMEZONE")
	if tz == "" {
		tz = "Europe/Riga"
	}

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "INFO"
	}

	return &Config{
		StoreDriver: driver,
		RedisURL:    redisURL,

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     port,
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		APISecret: os.Getenv("API_SECRET"),

		ListenAddr: addr,
		Timezone:   tz,

		LogLevel: level,
		LogFile:  os.Getenv("LOG_FILE"),
	}
}

func (c *Config) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

// Location resolves the configured timezone, falling back to UTC on a bad
// name. All date math in the engine assumes a single civil timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
