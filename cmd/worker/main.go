package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	inframail "github.com/jhoicas/stocktrack-api/internal/infrastructure/mail"
	"github.com/jhoicas/stocktrack-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stocktrack-api/internal/jobs"
	"github.com/jhoicas/stocktrack-api/pkg/config"
	"github.com/jhoicas/stocktrack-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().Str("env", cfg.App.Env).Msg("iniciando worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	mailer, err := inframail.NewSMTPSender(cfg.SMTP)
	if err != nil {
		log.Fatal().Err(err).Msg("cliente SMTP")
	}

	productRepo := postgres.NewProductRepository(pool)
	digest := jobs.NewLowStockDigestHandler(productRepo, mailer, log)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		Logger:   log,
		LowStock: digest,
		Cron: []jobs.CronRegistration{
			{Spec: jobs.CronLowStockDigest, Task: jobs.NewLowStockDigestTask()},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configurar worker")
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		log.Fatal().Err(err).Msg("worker finalizado con error")
	}
	log.Info().Msg("worker detenido")
}
