package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-hrdesk/internal/app"
	"go-hrdesk/internal/config"
	"go-hrdesk/internal/infrastructure/logger"
	qadapter "go-hrdesk/internal/infrastructure/queue/adapter"
	chatTask "go-hrdesk/internal/pkg/chat/application/task"
	notifyTask "go-hrdesk/internal/pkg/notification/application/task"
)

func main() {
	cfg, _, err := config.Load()
	if err != nil {
		logger.Default().Fatal(err, "invalid configuration")
	}
	logger.Init(cfg.LogLevel, map[string]string{"service": "hrdesk-worker"})
	log := logger.Default()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	container, err := app.New(startCtx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal(err, "failed to initialise application")
	}
	defer container.Close()

	sweep := chatTask.NewSweepJob(container.Sweep, cfg.SweepSchedule, log)
	if err := sweep.Start(); err != nil {
		log.Fatal(err, "failed to schedule sweep")
	}
	defer sweep.Stop()

	if cfg.RedisURL == "" {
		// Without a broker the API runs fan-out inline; only the sweep is left to do here.
		log.Warn("REDIS_URL not set; worker runs the sweep only")
		<-ctx.Done()
		return
	}

	srv, err := qadapter.NewAsynqServer(qadapter.ServerConfig{
		RedisURL:    cfg.RedisURL,
		Concurrency: cfg.AsynqConcurrency,
		Queues:      cfg.AsynqQueues,
	}, log)
	if err != nil {
		log.Fatal(err, "failed to create task server")
	}
	notifyTask.RegisterNotifyTasks(srv, container.Fanout, log)

	log.Infof("worker consuming %s", cfg.AsynqQueues)
	if err := srv.Run(ctx); err != nil {
		log.Error(err, "task server stopped")
	}
}
