package config

import (
	"os"
)

type Config struct {
	AppPort string

	// APIBaseURL is the upstream REST API every data call goes to.
	// AssetBaseURL is where uploaded images/files are served from; list and
	// detail payloads carry bare filenames that get resolved against it.
	APIBaseURL   string
	AssetBaseURL string

	RedisAddr     string
	RedisPassword string

	CookieSecure bool
}

func Load() Config {

	cfg := Config{

		AppPort: getenv("APP_PORT", "8080"),

		APIBaseURL:   getenv("API_BASE_URL", "http://localhost:3000/api"),
		AssetBaseURL: getenv("ASSET_BASE_URL", "http://localhost:3000/uploads"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		CookieSecure: os.Getenv("COOKIE_SECURE") != "false",
	}

	return cfg

}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
