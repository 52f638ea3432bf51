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

	cancelAppointmentHandler "github.com/logoped-app/appointment-service/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/logoped-app/appointment-service/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/logoped-app/appointment-service/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/logoped-app/appointment-service/internal/api/handlers/get_available_slots"
	getBookingStatsHandler "github.com/logoped-app/appointment-service/internal/api/handlers/get_booking_stats"
	getFullyBookedDatesHandler "github.com/logoped-app/appointment-service/internal/api/handlers/get_fully_booked_dates"
	"github.com/logoped-app/appointment-service/internal/api/middleware"
	"github.com/logoped-app/appointment-service/internal/config"
	"github.com/logoped-app/appointment-service/internal/domain"
	appointmentRepo "github.com/logoped-app/appointment-service/internal/infra/storage/appointment"
	"github.com/logoped-app/appointment-service/internal/integrations/telegram"
	appointmentsService "github.com/logoped-app/appointment-service/internal/service/appointments"
	createAppointmentUC "github.com/logoped-app/appointment-service/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/logoped-app/appointment-service/internal/usecase/get_available_slots"
	getFullyBookedDatesUC "github.com/logoped-app/appointment-service/internal/usecase/get_fully_booked_dates"
	"github.com/logoped-app/appointment-service/pkg/dbmetrics"
	"github.com/logoped-app/appointment-service/pkg/logger"
	"github.com/logoped-app/appointment-service/pkg/metrics"
	"github.com/logoped-app/appointment-service/pkg/simpletxmanager"
	"github.com/logoped-app/appointment-service/pkg/txmanager"
	"github.com/logoped-app/appointment-service/pkg/types"
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

	log.Info("Starting appointment-service...")
	log.Info("Configuration loaded from config.toml")

	// Временная зона и каталог слотов
	location, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Booking.Timezone, err)
	}

	openTime, err := types.NewTimeStringFromString(cfg.Booking.OpenTime)
	if err != nil {
		log.Fatal("Invalid booking.open_time: %v", err)
	}
	closeTime, err := types.NewTimeStringFromString(cfg.Booking.CloseTime)
	if err != nil {
		log.Fatal("Invalid booking.close_time: %v", err)
	}

	catalog, err := domain.NewSlotCatalog(openTime, closeTime, cfg.Booking.SlotDurationMinutes)
	if err != nil {
		log.Fatal("Failed to build slot catalog: %v", err)
	}
	log.Info("Slot catalog built: %d slots per day (%s-%s, step %dm)",
		catalog.Size(), openTime, closeTime, cfg.Booking.SlotDurationMinutes)

	policy := domain.BookingPolicy{
		MinNoticeMinutes: cfg.Booking.MinBookingNoticeMinutes,
		AdvanceMonths:    cfg.Booking.AdvanceBookingMonths,
	}

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

	// Инициализируем Telegram клиент
	tgClient := telegram.NewClient(
		cfg.Telegram.Enabled,
		cfg.Telegram.BotToken,
		cfg.Telegram.ChatID,
		cfg.Telegram.BaseURL,
		time.Duration(cfg.Telegram.Timeout)*time.Second,
		log,
	)
	if cfg.Telegram.Enabled {
		log.Info("Telegram notifications enabled (chat_id=%s)", cfg.Telegram.ChatID)
	} else {
		log.Info("Telegram notifications disabled")
	}

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	var (
		repository *appointmentRepo.Repository
		txMgr      TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		repository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		repository = appointmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервис
	appointmentsSvc := appointmentsService.NewService(repository, tgClient, location, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		repository,
		txMgr,
		tgClient,
		catalog,
		policy,
		location,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(repository, catalog, policy, location, log)
	getFullyBookedDatesUseCase := getFullyBookedDatesUC.NewUseCase(repository, catalog, policy, location, log)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getFullyBookedDates := getFullyBookedDatesHandler.NewHandler(getFullyBookedDatesUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getBookingStats := getBookingStatsHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Доступные слоты на дату
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Полностью занятые даты в горизонте бронирования
	api.HandleFunc("/dates/fully-booked", getFullyBookedDates.Handle).Methods(http.MethodGet)

	// Создание записи
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по коду бронирования
	api.HandleFunc("/appointments/{code}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи по коду бронирования
	api.HandleFunc("/appointments/{code}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Статистика за текущий месяц
	api.HandleFunc("/stats", getBookingStats.Handle).Methods(http.MethodGet)

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
