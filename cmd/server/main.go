package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/safawala/backoffice/internal/config"
	"github.com/safawala/backoffice/internal/db"
	"github.com/safawala/backoffice/internal/server"
	"github.com/safawala/backoffice/internal/services"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.Env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if *migrateOnlyFlag {
		if _, err := db.ConnectAndMigrate(); err != nil {
			logrus.WithError(err).Fatal("migrate-only failed")
		}
		logrus.Info("migrations completed; exiting as requested")
		return
	}

	dbConn, err := db.ConnectAndMigrate()
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	numbers, err := services.NewNumberService()
	if err != nil {
		logrus.WithError(err).Fatal("number service init failed")
	}

	handler := server.New(dbConn, numbers)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}

	go func() {
		logrus.WithFields(logrus.Fields{"env": cfg.Env, "addr": srv.Addr}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("error during shutdown")
	}
	logrus.Info("server gracefully stopped")
}
