package main

import (
	"workmode-api/internal/auth"
	"workmode-api/internal/config"
	"workmode-api/internal/database"
	"workmode-api/internal/routes"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	auth.Configure(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)

	if err := database.InitDB(cfg); err != nil {
		logrus.WithError(err).Fatal("failed to init database")
	}

	// Setup the routes (public and protected routes)
	ginRoutes := routes.SetupRoutes()

	addr := ":" + cfg.Port
	logrus.WithField("addr", addr).Info("server starting")
	if err := ginRoutes.Run(addr); err != nil {
		logrus.WithError(err).Fatal("failed to start server")
	}
}
