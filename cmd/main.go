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
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	addAbsenceDayHandler "github.com/nash87/parkhub-sub000/internal/api/handlers/add_absence_day"
	assignSlotHandler "github.com/nash87/parkhub-sub000/internal/api/handlers/assign_slot"
	cancelBookingHandler "github.com/nash87/parkhub-sub000/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/nash87/parkhub-sub000/internal/api/handlers/create_booking"
	createLotHandler "github.com/nash87/parkhub-sub000/internal/api/handlers/create_lot"
	deleteLotHandler "github.com/nash87/parkhub-sub000/internal/api/handlers/delete_lot"
	getAbsenceSettingsHandler "github.com/nash87/parkhub-sub000/internal/api/handlers/get_absence_settings"
	getBookingHandler "github.com/nash87/parkhub-sub000/internal/api/handlers/get_booking"
	getLotHandler "github.com/nash87/parkhub-sub000/internal/api/handlers/get_lot"
	getLotGridHandler "github.com/nash87/parkhub-sub000/internal/api/handlers/get_lot_grid"
	getSlotStatusHandler "github.com/nash87/parkhub-sub000/internal/api/handlers/get_slot_status"
	getUserBookingsHandler "github.com/nash87/parkhub-sub000/internal/api/handlers/get_user_bookings"
	joinWaitlistHandler "github.com/nash87/parkhub-sub000/internal/api/handlers/join_waitlist"
	listLotsHandler "github.com/nash87/parkhub-sub000/internal/api/handlers/list_lots"
	removeAbsenceDayHandler "github.com/nash87/parkhub-sub000/internal/api/handlers/remove_absence_day"
	setAbsencePatternHandler "github.com/nash87/parkhub-sub000/internal/api/handlers/set_absence_pattern"
	setSlotFlagHandler "github.com/nash87/parkhub-sub000/internal/api/handlers/set_slot_flag"
	updateLayoutHandler "github.com/nash87/parkhub-sub000/internal/api/handlers/update_layout"
	withdrawWaitlistHandler "github.com/nash87/parkhub-sub000/internal/api/handlers/withdraw_waitlist"
	"github.com/nash87/parkhub-sub000/internal/api/middleware"
	"github.com/nash87/parkhub-sub000/internal/config"
	absenceRepo "github.com/nash87/parkhub-sub000/internal/infra/storage/absence"
	bookingRepo "github.com/nash87/parkhub-sub000/internal/infra/storage/booking"
	lotRepo "github.com/nash87/parkhub-sub000/internal/infra/storage/lot"
	waitlistRepo "github.com/nash87/parkhub-sub000/internal/infra/storage/waitlist"
	notifyServiceClient "github.com/nash87/parkhub-sub000/internal/integrations/notifyservice"
	vehicleServiceClient "github.com/nash87/parkhub-sub000/internal/integrations/vehicleservice"
	"github.com/nash87/parkhub-sub000/internal/scheduler"
	absencesService "github.com/nash87/parkhub-sub000/internal/service/absences"
	bookingsService "github.com/nash87/parkhub-sub000/internal/service/bookings"
	catalogService "github.com/nash87/parkhub-sub000/internal/service/catalog"
	waitlistService "github.com/nash87/parkhub-sub000/internal/service/waitlist"
	createBookingUC "github.com/nash87/parkhub-sub000/internal/usecase/create_booking"
	resolveSlotStatusUC "github.com/nash87/parkhub-sub000/internal/usecase/resolve_slot_status"
	"github.com/nash87/parkhub-sub000/migrations"
	"github.com/nash87/parkhub-sub000/pkg/logger"
	"github.com/nash87/parkhub-sub000/pkg/metrics"
	"github.com/nash87/parkhub-sub000/pkg/txmanager"
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

	log.Info("Starting parkhub...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Применяем миграции
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set goose dialect: %v", err)
	}
	if err := goose.Up(db, "."); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Инициализируем интеграционных клиентов
	vehicleClient := vehicleServiceClient.NewClient(
		cfg.VehicleService.URL,
		time.Duration(cfg.VehicleService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (VehicleService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.VehicleService.URL, cfg.VehicleService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории и transaction manager
	bookingRepository := bookingRepo.NewRepository(db)
	lotRepository := lotRepo.NewRepository(db)
	absenceRepository := absenceRepo.NewRepository(db)
	waitlistRepository := waitlistRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	waitlistSvc := waitlistService.NewService(
		waitlistRepository,
		lotRepository,
		notifyClient,
		metricsCollector,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		waitlistSvc,
		metricsCollector,
		log,
	)
	catalogSvc := catalogService.NewService(
		lotRepository,
		bookingRepository,
		waitlistRepository,
		txMgr,
		log,
	)
	absenceSvc := absencesService.NewService(absenceRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		lotRepository,
		lotRepository,
		vehicleClient,
		txMgr,
		metricsCollector,
		log,
	)
	resolveStatusUseCase := resolveSlotStatusUC.NewUseCase(
		bookingRepository,
		lotRepository,
		lotRepository,
		absenceSvc,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getSlotStatus := getSlotStatusHandler.NewHandler(resolveStatusUseCase, log)
	getLotGrid := getLotGridHandler.NewHandler(resolveStatusUseCase, log)
	joinWaitlist := joinWaitlistHandler.NewHandler(waitlistSvc, log)
	withdrawWaitlist := withdrawWaitlistHandler.NewHandler(waitlistSvc, log)
	setAbsencePattern := setAbsencePatternHandler.NewHandler(absenceSvc, log)
	addAbsenceDay := addAbsenceDayHandler.NewHandler(absenceSvc, log)
	removeAbsenceDay := removeAbsenceDayHandler.NewHandler(absenceSvc, log)
	getAbsenceSettings := getAbsenceSettingsHandler.NewHandler(absenceSvc, log)
	createLot := createLotHandler.NewHandler(catalogSvc, log)
	listLots := listLotsHandler.NewHandler(catalogSvc, log)
	getLot := getLotHandler.NewHandler(catalogSvc, log)
	updateLayout := updateLayoutHandler.NewHandler(catalogSvc, log)
	deleteLot := deleteLotHandler.NewHandler(catalogSvc, log)
	setSlotFlag := setSlotFlagHandler.NewHandler(catalogSvc, log)
	assignSlot := assignSlotHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware и endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix, все маршруты требуют X-User-ID header
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Статусы мест ---
	api.HandleFunc("/slots/{slotId}/status", getSlotStatus.Handle).Methods(http.MethodGet)
	api.HandleFunc("/lots/{lotId}/grid", getLotGrid.Handle).Methods(http.MethodGet)

	// --- Очередь ожидания ---
	api.HandleFunc("/slots/{slotId}/waitlist", joinWaitlist.Handle).Methods(http.MethodPost)
	api.HandleFunc("/waitlist/{entryId}", withdrawWaitlist.Handle).Methods(http.MethodDelete)

	// --- Отсутствия (homeoffice) ---
	api.HandleFunc("/absences", getAbsenceSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/absences/pattern", setAbsencePattern.Handle).Methods(http.MethodPut)
	api.HandleFunc("/absences/days", addAbsenceDay.Handle).Methods(http.MethodPost)
	api.HandleFunc("/absences/days/{entryId}", removeAbsenceDay.Handle).Methods(http.MethodDelete)

	// --- Каталог парковок (административные операции проверяют роль) ---
	api.HandleFunc("/lots", createLot.Handle).Methods(http.MethodPost)
	api.HandleFunc("/lots", listLots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/lots/{lotId}", getLot.Handle).Methods(http.MethodGet)
	api.HandleFunc("/lots/{lotId}/layout", updateLayout.Handle).Methods(http.MethodPut)
	api.HandleFunc("/lots/{lotId}", deleteLot.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/slots/{slotId}/flags", setSlotFlag.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/slots/{slotId}/assign", assignSlot.Handle).Methods(http.MethodPatch)

	// Запускаем maintenance sweep
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	sweep := scheduler.New(
		bookingSvc,
		waitlistSvc,
		time.Duration(cfg.Scheduler.SweepInterval)*time.Second,
		metricsCollector,
		log,
	)
	go sweep.Start(schedulerCtx)

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

	stopScheduler()

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
