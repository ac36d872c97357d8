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

	cancelBookingHandler "github.com/vmrkv/CST-BookingService/internal/api/handlers/cancel_booking"
	copyScheduleDayHandler "github.com/vmrkv/CST-BookingService/internal/api/handlers/copy_schedule_day"
	createBookingHandler "github.com/vmrkv/CST-BookingService/internal/api/handlers/create_booking"
	createBreakHandler "github.com/vmrkv/CST-BookingService/internal/api/handlers/create_break"
	createTimeOffHandler "github.com/vmrkv/CST-BookingService/internal/api/handlers/create_time_off"
	getAvailableDatesHandler "github.com/vmrkv/CST-BookingService/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/vmrkv/CST-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/vmrkv/CST-BookingService/internal/api/handlers/get_booking"
	getConsultantBookingsHandler "github.com/vmrkv/CST-BookingService/internal/api/handlers/get_consultant_bookings"
	getScheduleHandler "github.com/vmrkv/CST-BookingService/internal/api/handlers/get_schedule"
	listServicesHandler "github.com/vmrkv/CST-BookingService/internal/api/handlers/list_services"
	reassignBookingHandler "github.com/vmrkv/CST-BookingService/internal/api/handlers/reassign_booking"
	replaceScheduleDayHandler "github.com/vmrkv/CST-BookingService/internal/api/handlers/replace_schedule_day"
	updateBookingStatusHandler "github.com/vmrkv/CST-BookingService/internal/api/handlers/update_booking_status"
	"github.com/vmrkv/CST-BookingService/internal/api/middleware"
	"github.com/vmrkv/CST-BookingService/internal/config"
	bookingRepo "github.com/vmrkv/CST-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/vmrkv/CST-BookingService/internal/infra/storage/catalog"
	scheduleRepo "github.com/vmrkv/CST-BookingService/internal/infra/storage/schedule"
	bookingsService "github.com/vmrkv/CST-BookingService/internal/service/bookings"
	scheduleService "github.com/vmrkv/CST-BookingService/internal/service/schedule"
	createBookingUC "github.com/vmrkv/CST-BookingService/internal/usecase/create_booking"
	getAvailableDatesUC "github.com/vmrkv/CST-BookingService/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/vmrkv/CST-BookingService/internal/usecase/get_available_slots"
	"github.com/vmrkv/CST-BookingService/pkg/logger"
	"github.com/vmrkv/CST-BookingService/pkg/metrics"
	"github.com/vmrkv/CST-BookingService/pkg/txmanager"
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

	log.Info("Starting CST-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Бизнес-окно и часовой пояс
	openTime, closeTime, err := cfg.Booking.Window()
	if err != nil {
		log.Fatal("Invalid booking window: %v", err)
	}
	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}
	log.Info("Business hours %s-%s (%s), advance=%d days, notice=%d min",
		openTime, closeTime, cfg.Booking.Timezone,
		cfg.Booking.AdvanceBookingDays, cfg.Booking.MinBookingNoticeMinutes)

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

	// Инициализируем репозитории и transaction manager
	bookingRepository := bookingRepo.NewRepository(db)
	catalogRepository := catalogRepo.NewRepository(db)
	scheduleRepository := scheduleRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Настройки бронирования для use cases
	slotsSettings := getAvailableSlotsUC.Settings{
		OpenTime:                openTime,
		CloseTime:               closeTime,
		Location:                location,
		AdvanceBookingDays:      cfg.Booking.AdvanceBookingDays,
		MinBookingNoticeMinutes: cfg.Booking.MinBookingNoticeMinutes,
	}
	datesSettings := getAvailableDatesUC.Settings{
		OpenTime:                openTime,
		CloseTime:               closeTime,
		Location:                location,
		AdvanceBookingDays:      cfg.Booking.AdvanceBookingDays,
		MinBookingNoticeMinutes: cfg.Booking.MinBookingNoticeMinutes,
	}
	createSettings := createBookingUC.Settings{
		OpenTime:                openTime,
		CloseTime:               closeTime,
		Location:                location,
		AdvanceBookingDays:      cfg.Booking.AdvanceBookingDays,
		MinBookingNoticeMinutes: cfg.Booking.MinBookingNoticeMinutes,
		DefaultStrategy:         cfg.Booking.DefaultStrategy,
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		scheduleRepository,
		txMgr,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogRepository,
		scheduleRepository,
		bookingRepository,
		slotsSettings,
		log,
	)
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		catalogRepository,
		scheduleRepository,
		bookingRepository,
		datesSettings,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		catalogRepository,
		scheduleRepository,
		bookingRepository,
		txMgr,
		createSettings,
		log,
	)

	// Инициализируем handlers
	listServices := listServicesHandler.NewHandler(catalogRepository, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, metricsCollector, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	reassignBooking := reassignBookingHandler.NewHandler(bookingSvc, log)
	getConsultantBookings := getConsultantBookingsHandler.NewHandler(bookingSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	replaceScheduleDay := replaceScheduleDayHandler.NewHandler(scheduleSvc, log)
	copyScheduleDay := copyScheduleDayHandler.NewHandler(scheduleSvc, log)
	createTimeOff := createTimeOffHandler.NewHandler(scheduleSvc, log)
	createBreak := createBreakHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (клиентский booking-флоу, без аутентификации)
	// ============================================================

	// Каталог услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Слоты на дату
	api.HandleFunc("/services/{serviceId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Календарь доступности
	api.HandleFunc("/services/{serviceId}/available-dates",
		getAvailableDates.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Бронирование по ID
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (операции персонала, требуют X-Staff-ID)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Обновление статуса
	protected.HandleFunc("/bookings/{bookingId}", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Перевод на другого консультанта
	protected.HandleFunc("/bookings/{bookingId}/reassign", reassignBooking.Handle).Methods(http.MethodPost)

	// Бронирования консультанта
	protected.HandleFunc("/consultants/{consultantId}/bookings", getConsultantBookings.Handle).Methods(http.MethodGet)

	// --- Расписания консультантов ---
	// Недельное расписание
	protected.HandleFunc("/consultants/{consultantId}/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// Замена окон одного дня недели
	protected.HandleFunc("/consultants/{consultantId}/schedule/days/{dayOfWeek}",
		replaceScheduleDay.Handle).Methods(http.MethodPut)

	// Копирование дня недели
	protected.HandleFunc("/consultants/{consultantId}/schedule/copy", copyScheduleDay.Handle).Methods(http.MethodPost)

	// Отпуска и перерывы
	protected.HandleFunc("/consultants/{consultantId}/time-off", createTimeOff.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/consultants/{consultantId}/breaks", createBreak.Handle).Methods(http.MethodPost)

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
