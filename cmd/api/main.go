package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "go-hrdesk/cmd/api/router/v1"
	"go-hrdesk/internal/app"
	"go-hrdesk/internal/config"
	"go-hrdesk/internal/infrastructure/logger"
	"go-hrdesk/internal/infrastructure/realtime"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, envLoaded, err := config.Load()
	if err != nil {
		logger.Default().Fatal(err, "invalid configuration")
	}
	logger.Init(cfg.LogLevel, map[string]string{"service": "hrdesk-api"})
	log := logger.Default()
	if !envLoaded {
		log.Debug(".env file not found; using process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	container, err := app.New(startCtx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal(err, "failed to initialise application")
	}
	defer container.Close()

	if container.Relay != nil {
		go func() {
			if err := container.Relay.Run(ctx); err != nil {
				log.Error(err, "change feed relay stopped")
			}
		}()
	}

	rt := realtime.NewRouter()
	defer rt.Close()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), v1.RequestLogger(log))
	v1.RegisterRoutes(r, container, v1.Options{
		Tokens:         container.Tokens,
		Realtime:       rt,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Infof("api listening on %s (storage=%s)", srv.Addr, cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(err, "http server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	// hijacked websocket connections are not tracked by Shutdown
	rt.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "graceful shutdown failed")
	}
}
