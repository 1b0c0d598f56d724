package main

import (
	"errors"
	"os"
)

type serverConfig struct {
	Port          string
	SigningSecret string
	AdminSecret   string
	GeoIPDatabase string
	WebhookURL    string
	SeedDomain    string
	SeedPublicKey string
	SeedSecretKey string
}

func loadServerConfig() (serverConfig, error) {
	cfg := serverConfig{
		Port:          envOr("CAPTCHA_PORT", "8080"),
		SigningSecret: os.Getenv("CAPTCHA_SIGNING_SECRET"),
		AdminSecret:   os.Getenv("CAPTCHA_ADMIN_SECRET"),
		GeoIPDatabase: os.Getenv("CAPTCHA_GEOIP_DB"),
		WebhookURL:    os.Getenv("CAPTCHA_WEBHOOK_URL"),
		SeedDomain:    os.Getenv("CAPTCHA_SEED_DOMAIN"),
		SeedPublicKey: os.Getenv("CAPTCHA_SEED_PUBLIC_KEY"),
		SeedSecretKey: os.Getenv("CAPTCHA_SEED_SECRET_KEY"),
	}

	if cfg.SigningSecret == "" {
		return serverConfig{}, errors.New("CAPTCHA_SIGNING_SECRET is required")
	}
	if cfg.AdminSecret == "" {
		return serverConfig{}, errors.New("CAPTCHA_ADMIN_SECRET is required")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
