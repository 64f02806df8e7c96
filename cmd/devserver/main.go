package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pborman/getopt"

	"github.com/nomad-coffee/client/internal/config"
	"github.com/nomad-coffee/client/internal/devserver"
	"github.com/nomad-coffee/client/internal/logging"
)

const app = "nomad-devserver"

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Path to a config file")
	optHelp := getopt.BoolLong("help", 0, "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	cfg, err := config.Load(*optConfig)
	if err != nil {
		logging.New(config.LogConfig{}, app).WithError(err).Fatal("Failed to load configuration")
	}
	log := logging.New(cfg.Log, app)

	srv := devserver.New(devserver.Config{
		Secret:   []byte(cfg.DevServer.Secret),
		TokenTTL: cfg.DevServer.TokenTTL,
	}, log)

	httpServer := &http.Server{
		Addr:              cfg.DevServer.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("addr", cfg.DevServer.Addr).Info("Development GraphQL backend listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
	log.Info("Server exited")
}
