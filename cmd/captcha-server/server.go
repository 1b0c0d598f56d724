package main

import (
	goCaptcha "github.com/MrEthical07/goCaptcha"
	"github.com/MrEthical07/goCaptcha/metrics/export/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func newServer(engine *goCaptcha.Engine, logger *zap.Logger, cfg serverConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.IPExtractor = echo.ExtractIPFromRealIPHeader()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/api/v1/health"
		},
		HandleError:  true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogError:     true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("ip", v.RemoteIP),
				zap.String("method", v.Method),
				zap.String("path", v.URIPath),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("request", fields...)
			return nil
		},
	}))

	h := &handler{engine: engine, logger: logger}

	api := e.Group("/api/v1")
	api.POST("/token", h.issueChallenge)
	api.POST("/verify", h.verify)
	api.POST("/batch-verify", h.verifyBatch)
	api.GET("/challenge/:token", h.challengeStatus)
	api.GET("/health", h.health)

	e.GET("/metrics", echo.WrapHandler(prometheus.NewPrometheusExporter(engine).Handler()))

	admin := e.Group("/api/admin", adminAuth(cfg.AdminSecret))
	admin.POST("/site-keys", h.createSiteKey)
	admin.GET("/site-keys", h.listSiteKeys)
	admin.PATCH("/site-keys/:id", h.updateSiteKey)
	admin.GET("/statistics", h.statistics)
	admin.GET("/statistics/:id", h.siteStatistics)

	return e
}
