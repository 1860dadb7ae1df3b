package main

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"blogapi/internal/config"
	"blogapi/internal/repository"
	"blogapi/internal/server"
)

func main() {
	// A .env file is optional; environment beats config file for secrets.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "configs/config.yml"
	}

	bootLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		bootLogger.Fatal("Failed to load config", zap.Error(err))
	}

	var logger *zap.Logger
	switch cfg.LogLevel {
	case "debug":
		logger, err = zap.NewDevelopment()
	default:
		logger, err = zap.NewProduction()
	}
	if err != nil {
		bootLogger.Fatal("Failed to build logger", zap.Error(err))
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations, then make sure roles and the default admin exist.
	repository.MigrateDB(db, logger)
	if err := repository.Seed(db, cfg.Auth.AdminPassword, logger); err != nil {
		logger.Fatal("Failed to seed database", zap.Error(err))
	}

	srv := server.NewServer(db, cfg, logger)
	srv.Run(cfg.Server.Port)
}
