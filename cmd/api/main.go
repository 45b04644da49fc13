package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-3pl-warehouse/internal/api"
	"go-3pl-warehouse/internal/config"
	"go-3pl-warehouse/internal/ws"
	"go-3pl-warehouse/pkg/database"

	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Load Env
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	setupLogging(cfg)

	// 2. Setup Database
	db := database.ConnectDB(cfg.DBDriver, cfg.DSN)
	if err := database.Migrate(db); err != nil {
		logrus.Fatalf("migrate: %v", err)
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Wire layers and routes
	app, err := api.New(api.Options{Config: cfg, DB: db, Hub: wsHub})
	if err != nil {
		logrus.Fatalf("setup: %v", err)
	}

	// 5. Graceful Shutdown
	go func() {
		logrus.Infof("listening on :%s (%s, auth enabled: %v)", cfg.Port, cfg.Environment, cfg.AuthEnabled)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logrus.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}
	wsHub.Close()

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logrus.Info("Server exited")
}

func setupLogging(cfg *config.Config) {
	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
