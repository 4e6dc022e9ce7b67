package config

import (
	"os"
)

type Config struct {
	DBPath  string
	Port    string
	GinMode string
}

func Load() *Config {
	return &Config{
		DBPath:  getEnv("DB_PATH", "todos.db"),
		Port:    getEnv("PORT", "3000"),
		GinMode: getEnv("GIN_MODE", "debug"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
