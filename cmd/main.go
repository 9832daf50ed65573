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

	cancelJobHandler "github.com/prisma-detailing/DetailingService/internal/api/handlers/cancel_job"
	createJobHandler "github.com/prisma-detailing/DetailingService/internal/api/handlers/create_job"
	getAvailabilityHandler "github.com/prisma-detailing/DetailingService/internal/api/handlers/get_availability"
	getDetailerJobsHandler "github.com/prisma-detailing/DetailingService/internal/api/handlers/get_detailer_jobs"
	getJobHandler "github.com/prisma-detailing/DetailingService/internal/api/handlers/get_job"
	getTimeslotsHandler "github.com/prisma-detailing/DetailingService/internal/api/handlers/get_timeslots"
	listServiceTypesHandler "github.com/prisma-detailing/DetailingService/internal/api/handlers/list_service_types"
	setAvailabilityHandler "github.com/prisma-detailing/DetailingService/internal/api/handlers/set_availability"
	setDetailerActiveHandler "github.com/prisma-detailing/DetailingService/internal/api/handlers/set_detailer_active"
	updateJobStatusHandler "github.com/prisma-detailing/DetailingService/internal/api/handlers/update_job_status"
	"github.com/prisma-detailing/DetailingService/internal/api/middleware"
	"github.com/prisma-detailing/DetailingService/internal/config"
	availabilityRepo "github.com/prisma-detailing/DetailingService/internal/infra/storage/availability"
	detailerRepo "github.com/prisma-detailing/DetailingService/internal/infra/storage/detailer"
	jobRepo "github.com/prisma-detailing/DetailingService/internal/infra/storage/job"
	serviceTypeRepo "github.com/prisma-detailing/DetailingService/internal/infra/storage/servicetype"
	customerServiceClient "github.com/prisma-detailing/DetailingService/internal/integrations/customerservice"
	availabilityService "github.com/prisma-detailing/DetailingService/internal/service/availability"
	jobsService "github.com/prisma-detailing/DetailingService/internal/service/jobs"
	createJobUC "github.com/prisma-detailing/DetailingService/internal/usecase/create_job"
	getTimeslotsUC "github.com/prisma-detailing/DetailingService/internal/usecase/get_timeslots"
	"github.com/prisma-detailing/DetailingService/pkg/dbmetrics"
	"github.com/prisma-detailing/DetailingService/pkg/logger"
	"github.com/prisma-detailing/DetailingService/pkg/metrics"
	"github.com/prisma-detailing/DetailingService/pkg/simpletxmanager"
	"github.com/prisma-detailing/DetailingService/pkg/txmanager"
	"github.com/prisma-detailing/DetailingService/pkg/types"
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

	log.Info("Starting DetailingService...")
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

	// Инициализируем интеграционного клиента
	customerClient := customerServiceClient.NewClient(
		cfg.CustomerService.URL,
		time.Duration(cfg.CustomerService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CustomerService=%s timeout=%ds)",
		cfg.CustomerService.URL, cfg.CustomerService.Timeout)

	// Политика расчета слотов из конфигурации (уже провалидирована в config.Load)
	openTime, err := types.NewTimeStringFromString(cfg.Booking.DefaultOpenTime)
	if err != nil {
		log.Fatal("Invalid booking.default_open_time: %v", err)
	}
	closeTime, err := types.NewTimeStringFromString(cfg.Booking.DefaultCloseTime)
	if err != nil {
		log.Fatal("Invalid booking.default_close_time: %v", err)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		detailerRepository     *detailerRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		jobRepository          *jobRepo.Repository
		serviceTypeRepository  *serviceTypeRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		detailerRepository = detailerRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		jobRepository = jobRepo.NewRepository(wrappedDB)
		serviceTypeRepository = serviceTypeRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		detailerRepository = detailerRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		jobRepository = jobRepo.NewRepository(db)
		serviceTypeRepository = serviceTypeRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	jobsSvc := jobsService.NewService(
		jobRepository,
		detailerRepository,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		detailerRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getTimeslotsUseCase := getTimeslotsUC.NewUseCase(
		detailerRepository,
		availabilityRepository,
		jobRepository,
		getTimeslotsUC.Policy{
			DefaultOpenTime:     openTime,
			DefaultCloseTime:    closeTime,
			TravelBufferMinutes: cfg.Booking.TravelBufferMinutes,
		},
		log,
	)

	createJobUseCase := createJobUC.NewUseCase(
		jobRepository,
		detailerRepository,
		serviceTypeRepository,
		availabilityRepository,
		customerClient,
		txMgr,
		createJobUC.Policy{
			DefaultOpenTime:     openTime,
			DefaultCloseTime:    closeTime,
			TravelBufferMinutes: cfg.Booking.TravelBufferMinutes,
		},
		log,
	)

	// Инициализируем handlers
	getTimeslots := getTimeslotsHandler.NewHandler(getTimeslotsUseCase, log)
	createJob := createJobHandler.NewHandler(createJobUseCase, log)
	getJob := getJobHandler.NewHandler(jobsSvc, log)
	cancelJob := cancelJobHandler.NewHandler(jobsSvc, log)
	updateJobStatus := updateJobStatusHandler.NewHandler(jobsSvc, log)
	getDetailerJobs := getDetailerJobsHandler.NewHandler(jobsSvc, log)
	setAvailability := setAvailabilityHandler.NewHandler(availabilitySvc, log)
	setDetailerActive := setDetailerActiveHandler.NewHandler(availabilitySvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	listServiceTypes := listServiceTypesHandler.NewHandler(serviceTypeRepository, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расчет доступных слотов по городу и длительности услуги
	api.HandleFunc("/timeslots", getTimeslots.Handle).Methods(http.MethodGet)

	// Каталог услуг
	api.HandleFunc("/service-types", listServiceTypes.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заявки ---
	// Создание заявки
	protected.HandleFunc("/jobs", createJob.Handle).Methods(http.MethodPost)

	// Получение заявки по ID
	protected.HandleFunc("/jobs/{jobId}", getJob.Handle).Methods(http.MethodGet)

	// Отмена заявки
	protected.HandleFunc("/jobs/{jobId}/cancel", cancelJob.Handle).Methods(http.MethodPatch)

	// Обновление статуса заявки
	protected.HandleFunc("/jobs/{jobId}/status", updateJobStatus.Handle).Methods(http.MethodPatch)

	// --- Кабинет детейлера ---
	// Календарь работ детейлера
	protected.HandleFunc("/detailers/{detailerId}/jobs", getDetailerJobs.Handle).Methods(http.MethodGet)

	// Окна доступности на дату
	protected.HandleFunc("/detailers/{detailerId}/availability", setAvailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/detailers/{detailerId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Пауза/возобновление участия детейлера в подборе слотов
	protected.HandleFunc("/detailers/{detailerId}/active", setDetailerActive.Handle).Methods(http.MethodPatch)

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
