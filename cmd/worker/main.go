package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/m04kA/SMC-ScheduleService/internal/config"
	notifyClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-ScheduleService/internal/scheduler/reminders"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ScheduleService reminder worker...")

	// Инициализируем клиент шлюза уведомлений
	notifier := notifyClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("NotifyService client initialized (url=%s, timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Настраиваем сервер очереди напоминаний
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: cfg.Redis.Concurrency,
		},
	)

	mux := reminders.NewWorkerMux(notifier, log)

	if err := srv.Start(mux); err != nil {
		log.Fatal("Reminder worker failed to start: %v", err)
	}
	log.Info("Reminder worker started (redis=%s, db=%d, concurrency=%d)",
		cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.Concurrency)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down reminder worker...")
	srv.Shutdown()
	log.Info("Reminder worker stopped gracefully")
}
