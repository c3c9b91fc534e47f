package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the service reads from the environment.
type Config struct {
	Port          string
	RedisURI      string
	RedisPassword string
	JWTSecret     string
	LogLevel      string
	LogFormat     string

	// VoteCooldown is the minimum interval before a recorded vote may be
	// changed. Production runs at 24h; staging shrinks it via VOTE_COOLDOWN.
	VoteCooldown time.Duration

	// AdminUsername/AdminPassword seed a back-office account at startup
	// when both are set.
	AdminUsername string
	AdminPassword string
}

// Load reads .env (if present) and resolves the service configuration.
func Load() Config {
	LoadEnv()
	return Config{
		Port:          GetEnv("PORT", "8080"),
		RedisURI:      GetEnv("REDIS_URI", "localhost:6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		JWTSecret:     GetEnv("JWT_SECRET", ""),
		LogLevel:      GetEnv("LOG_LEVEL", "info"),
		LogFormat:     GetEnv("LOG_FORMAT", "json"),
		VoteCooldown:  GetDuration("VOTE_COOLDOWN", 24*time.Hour),
		AdminUsername: GetEnv("ADMIN_USERNAME", ""),
		AdminPassword: GetEnv("ADMIN_PASSWORD", ""),
	}
}

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: No .env file found, using environment variables")
	}
}

func GetEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, val, fallback)
		return fallback
	}
	return d
}
