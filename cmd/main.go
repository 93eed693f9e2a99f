package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_booking"
	createMasterHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_master"
	deleteMasterHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/delete_master"
	getBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_booking"
	getCalendarHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_calendar"
	getDayScheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_day_schedule"
	getMasterHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_master"
	getMasterBookingsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_master_bookings"
	getMastersHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_masters"
	getUserBookingsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_user_bookings"
	toggleDayBlockHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/toggle_day_block"
	toggleSlotBlockHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/toggle_slot_block"
	updateMasterHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_master"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	masterRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/master"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	notifyClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-ScheduleService/internal/scheduler/reminders"
	bookingsService "github.com/m04kA/SMC-ScheduleService/internal/service/bookings"
	mastersService "github.com/m04kA/SMC-ScheduleService/internal/service/masters"
	scheduleService "github.com/m04kA/SMC-ScheduleService/internal/service/schedule"
	createBookingUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_booking"
	getCalendarUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_calendar"
	getDayScheduleUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_day_schedule"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
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

	log.Info("Starting SMC-ScheduleService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиент шлюза уведомлений
	notifier := notifyClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("NotifyService client initialized (url=%s, timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем клиент очереди напоминаний
	reminderClient := reminders.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
	defer reminderClient.Close()
	log.Info("Reminder queue client initialized (redis=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		masterRepository   *masterRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		masterRepository = masterRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		masterRepository = masterRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Рабочая сетка из конфигурации
	openTime := types.TimeString(cfg.Schedule.OpenTime)
	closeTime := types.TimeString(cfg.Schedule.CloseTime)

	// Инициализируем сервисы
	timeProvider := &bookingsService.RealTimeProvider{}

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		masterRepository,
		notifier,
		timeProvider,
		log,
	)
	masterSvc := mastersService.NewService(
		masterRepository,
		bookingRepository,
		timeProvider,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		masterRepository,
		scheduleService.Grid{
			OpenTime:            openTime,
			CloseTime:           closeTime,
			SlotDurationMinutes: cfg.Schedule.SlotDurationMinutes,
		},
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		masterRepository,
		notifier,
		reminderClient,
		txMgr,
		createBookingUC.Config{
			OpenTime:            openTime,
			CloseTime:           closeTime,
			SlotDurationMinutes: cfg.Schedule.SlotDurationMinutes,
			ReminderHoursBefore: cfg.Schedule.ReminderHoursBefore,
		},
		log,
	)

	getDayScheduleUseCase := getDayScheduleUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		masterRepository,
		getDayScheduleUC.Config{
			OpenTime:            openTime,
			CloseTime:           closeTime,
			SlotDurationMinutes: cfg.Schedule.SlotDurationMinutes,
		},
		log,
	)

	getCalendarUseCase := getCalendarUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		masterRepository,
		getCalendarUC.Config{
			OpenTime:            openTime,
			CloseTime:           closeTime,
			SlotDurationMinutes: cfg.Schedule.SlotDurationMinutes,
		},
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getMasterBookings := getMasterBookingsHandler.NewHandler(bookingSvc, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(getDayScheduleUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	toggleDayBlock := toggleDayBlockHandler.NewHandler(scheduleSvc, log)
	toggleSlotBlock := toggleSlotBlockHandler.NewHandler(scheduleSvc, log)
	createMaster := createMasterHandler.NewHandler(masterSvc, log)
	getMaster := getMasterHandler.NewHandler(masterSvc, log)
	getMasters := getMastersHandler.NewHandler(masterSvc, log)
	updateMaster := updateMasterHandler.NewHandler(masterSvc, log)
	deleteMaster := deleteMasterHandler.NewHandler(masterSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Список мастеров и профиль мастера
	api.HandleFunc("/masters", getMasters.Handle).Methods(http.MethodGet)
	api.HandleFunc("/masters/{masterId}", getMaster.Handle).Methods(http.MethodGet)

	// Расписание дня со статусами слотов
	api.HandleFunc("/masters/{masterId}/schedule/{date}", getDaySchedule.Handle).Methods(http.MethodGet)

	// Календарь месяца с маркерами занятости
	api.HandleFunc("/masters/{masterId}/calendar/{month}", getCalendar.Handle).Methods(http.MethodGet)

	// Создание профиля мастера (вызывает шлюз бота при регистрации)
	api.HandleFunc("/masters", createMaster.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Кабинет мастера ---
	protected.HandleFunc("/masters/{masterId}/bookings", getMasterBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/masters/{masterId}/schedule/day-block", toggleDayBlock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/masters/{masterId}/schedule/slot-block", toggleSlotBlock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/masters/{masterId}", updateMaster.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/masters/{masterId}", deleteMaster.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
