package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr    string
	DatabaseURL string

	JWTSecret string
	JWTIssuer string

	// AppBaseURL is the absolute prefix for verification and reset links
	// embedded in outbound email.
	AppBaseURL string

	ResendAPIKey string
	MailFrom     string

	// AdminReviewEmail receives lawyer signup notices; empty disables them.
	AdminReviewEmail string

	CloudinaryURL string

	CookieDomain  string
	SecureCookies bool
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("error load env %s", err)
	}
	return Config{
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTIssuer:        os.Getenv("JWT_ISSUER"),
		AppBaseURL:       os.Getenv("APP_BASE_URL"),
		ResendAPIKey:     os.Getenv("RESEND_API_KEY"),
		MailFrom:         os.Getenv("MAIL_FROM"),
		AdminReviewEmail: os.Getenv("ADMIN_REVIEW_EMAIL"),
		CloudinaryURL:    os.Getenv("CLOUDINARY_URL"),
		CookieDomain:     os.Getenv("COOKIE_DOMAIN"),
		SecureCookies:    os.Getenv("COOKIE_SECURE") != "false",
	}
}

func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Printf("%s not set, using %q", key, fallback)
	return fallback
}
