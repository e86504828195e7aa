package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Open-Source-Life/AxolotlIndex/config"
	"github.com/Open-Source-Life/AxolotlIndex/middlewares"
	"github.com/Open-Source-Life/AxolotlIndex/routes"
	"github.com/Open-Source-Life/AxolotlIndex/services/audit"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = audit.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		log.Info().Msg("Database connected")
	}

	app := fiber.New(fiber.Config{
		AppName:      "AxolotlIndex",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: middlewares.ErrorHandler,
	})

	api := app.Group("/api/v1")
	routes.SetupRoutes(&api, db, cfg)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Server shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.Addr()).Str("public_dir", cfg.PublicDir).Msg("Starting server")
	if err := app.Listen(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
