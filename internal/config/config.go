package config

import (
	"os"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Identity provider (bearer token verification)
	IdentityJWKSURL  string
	IdentityIssuer   string
	IdentityAudience string

	// Payment provider (hosted checkout)
	StripeSecretKey string
	StripeAPIBase   string

	// Frontend base URL for checkout redirect targets
	SiteDomain string

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "blooddrop_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		IdentityJWKSURL:  getEnv("IDENTITY_JWKS_URL", ""),
		IdentityIssuer:   getEnv("IDENTITY_ISSUER", ""),
		IdentityAudience: getEnv("IDENTITY_AUDIENCE", ""),

		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		StripeAPIBase:   getEnv("STRIPE_API_BASE", "https://api.stripe.com"),

		SiteDomain: getEnv("SITE_DOMAIN", "http://localhost:5173"),

		Port:        getEnv("PORT", "5000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
