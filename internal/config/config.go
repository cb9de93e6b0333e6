package config

import (
	"os"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	ListenAddr  string // HTTP listen address
	UsersDBPath string // JSON array file backing the user store
	BooksDBPath string // JSON array file backing the book store
	JWTSecret   string // HMAC secret for login tokens
}

// Load reads configuration from environment variables, falling back to defaults.
func Load() *Config {
	return &Config{
		ListenAddr:  envOrDefault("LISTEN_ADDR", ":8080"),
		UsersDBPath: envOrDefault("USERS_DB_PATH", "database/users.json"),
		BooksDBPath: envOrDefault("BOOKS_DB_PATH", "database/books.json"),
		JWTSecret:   envOrDefault("JWT_SECRET", "bookshelf-dev-secret"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
