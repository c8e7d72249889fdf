package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"techlinter/config"
	"techlinter/db"
	"techlinter/gpt"
	"techlinter/handlers"
	applog "techlinter/logger"
	"techlinter/store"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	gptClient := gpt.New(cfg.OpenAIURL, cfg.OpenAIKey, cfg.OpenAIModel,
		time.Duration(cfg.OpenAITimeout)*time.Second)
	h := handlers.New(store.New(bdb), gptClient)

	e := echo.New()
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"*", "Authorization"},
	}))

	e.GET("/", h.Hello)
	e.GET("/users/:name", h.UserPage)
	e.POST("/signup", h.Signup)
	e.POST("/login", h.Login)
	e.POST("/analyze", h.Analyze)
	e.POST("/fix", h.Fix)

	logger.Info("starting server", zap.String("addr", cfg.Port))
	if err := e.Start(cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
