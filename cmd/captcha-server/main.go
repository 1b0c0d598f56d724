package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	goCaptcha "github.com/MrEthical07/goCaptcha"
	"github.com/MrEthical07/goCaptcha/geo"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Absent .env is the normal case outside local development.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := loadServerConfig()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	engineCfg := goCaptcha.DefaultConfig()
	engineCfg.Token.SigningSecret = []byte(cfg.SigningSecret)
	engineCfg.Metrics.Enabled = true
	engineCfg.Metrics.EnableLatencyHistograms = true
	engineCfg.Audit.Enabled = cfg.WebhookURL != ""

	builder := goCaptcha.New().WithConfig(engineCfg)

	if cfg.WebhookURL != "" {
		builder = builder.WithAuditSink(goCaptcha.NewWebhookSink(cfg.WebhookURL, nil))
	}

	if cfg.SeedDomain != "" && cfg.SeedPublicKey != "" && cfg.SeedSecretKey != "" {
		builder = builder.WithSiteCredential(cfg.SeedDomain, cfg.SeedPublicKey, cfg.SeedSecretKey)
	}

	var resolver *geo.Resolver
	if cfg.GeoIPDatabase != "" {
		resolver, err = geo.Open(cfg.GeoIPDatabase)
		if err != nil {
			logger.Fatal("open geoip database", zap.Error(err), zap.String("path", cfg.GeoIPDatabase))
		}
		defer func() { _ = resolver.Close() }()
		builder = builder.WithCountryResolver(resolver)
	}

	engine, err := builder.Build()
	if err != nil {
		logger.Fatal("build engine", zap.Error(err))
	}
	defer engine.Close()

	srv := newServer(engine, logger, cfg)

	go func() {
		logger.Info("listening", zap.String("port", cfg.Port))
		if err := srv.Start(":" + cfg.Port); err != nil {
			logger.Info("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
