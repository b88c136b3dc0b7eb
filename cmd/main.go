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

	cancelReservationHandler "github.com/condoreservas/reservation-service/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/condoreservas/reservation-service/internal/api/handlers/check_availability"
	createPaymentHandler "github.com/condoreservas/reservation-service/internal/api/handlers/create_payment"
	createReservationHandler "github.com/condoreservas/reservation-service/internal/api/handlers/create_reservation"
	getReservationHandler "github.com/condoreservas/reservation-service/internal/api/handlers/get_reservation"
	getSpaceHandler "github.com/condoreservas/reservation-service/internal/api/handlers/get_space"
	getSpaceReservationsHandler "github.com/condoreservas/reservation-service/internal/api/handlers/get_space_reservations"
	getUserReservationsHandler "github.com/condoreservas/reservation-service/internal/api/handlers/get_user_reservations"
	listAvailabilityHandler "github.com/condoreservas/reservation-service/internal/api/handlers/list_availability"
	listSpacesHandler "github.com/condoreservas/reservation-service/internal/api/handlers/list_spaces"
	paymentWebhookHandler "github.com/condoreservas/reservation-service/internal/api/handlers/payment_webhook"
	updatePaymentStatusHandler "github.com/condoreservas/reservation-service/internal/api/handlers/update_payment_status"
	updateReservationStatusHandler "github.com/condoreservas/reservation-service/internal/api/handlers/update_reservation_status"
	"github.com/condoreservas/reservation-service/internal/api/middleware"
	"github.com/condoreservas/reservation-service/internal/config"
	activityLogRepo "github.com/condoreservas/reservation-service/internal/infra/storage/activitylog"
	paymentRepo "github.com/condoreservas/reservation-service/internal/infra/storage/payment"
	reservationRepo "github.com/condoreservas/reservation-service/internal/infra/storage/reservation"
	spaceRepo "github.com/condoreservas/reservation-service/internal/infra/storage/space"
	userRepo "github.com/condoreservas/reservation-service/internal/infra/storage/user"
	"github.com/condoreservas/reservation-service/internal/integrations/pixsim"
	paymentsService "github.com/condoreservas/reservation-service/internal/service/payments"
	reservationsService "github.com/condoreservas/reservation-service/internal/service/reservations"
	spacesService "github.com/condoreservas/reservation-service/internal/service/spaces"
	createReservationUC "github.com/condoreservas/reservation-service/internal/usecase/create_reservation"
	listAvailabilityUC "github.com/condoreservas/reservation-service/internal/usecase/list_availability"
	"github.com/condoreservas/reservation-service/pkg/dbmetrics"
	"github.com/condoreservas/reservation-service/pkg/logger"
	"github.com/condoreservas/reservation-service/pkg/metrics"
	"github.com/condoreservas/reservation-service/pkg/simpletxmanager"
	"github.com/condoreservas/reservation-service/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting reservation-service...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Migrations.Auto {
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatal("Failed to set migration dialect: %v", err)
		}
		if err := goose.Up(db, cfg.Migrations.Dir); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied from %s", cfg.Migrations.Dir)
	}

	chargeGen := pixsim.NewGenerator(cfg.Payments.QRCodeBaseURL)

	// Repositories and the transaction manager, with or without the metrics
	// wrapper depending on configuration
	var (
		spaceRepository       *spaceRepo.Repository
		userRepository        *userRepo.Repository
		reservationRepository *reservationRepo.Repository
		paymentRepository     *paymentRepo.Repository
		activityLogRepository *activityLogRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		spaceRepository = spaceRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		activityLogRepository = activityLogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		spaceRepository = spaceRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		activityLogRepository = activityLogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Services
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		paymentRepository,
		activityLogRepository,
		log,
	)
	paymentsSvc := paymentsService.NewService(
		paymentRepository,
		reservationRepository,
		chargeGen,
		activityLogRepository,
		log,
	)
	spacesSvc := spacesService.NewService(
		spaceRepository,
		reservationRepository,
		log,
	)

	// Use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		spaceRepository,
		userRepository,
		reservationRepository,
		activityLogRepository,
		txMgr,
		log,
	)
	listAvailabilityUseCase := listAvailabilityUC.NewUseCase(
		spaceRepository,
		reservationRepository,
		log,
	)

	// Handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getSpaceReservations := getSpaceReservationsHandler.NewHandler(reservationsSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	listSpaces := listSpacesHandler.NewHandler(spacesSvc, log)
	getSpace := getSpaceHandler.NewHandler(spacesSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(spacesSvc, log)
	listAvailability := listAvailabilityHandler.NewHandler(listAvailabilityUseCase, log)
	createPayment := createPaymentHandler.NewHandler(paymentsSvc, log)
	updatePaymentStatus := updatePaymentStatusHandler.NewHandler(paymentsSvc, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(paymentsSvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes: the space catalog and availability
	api.HandleFunc("/spaces", listSpaces.Handle).Methods(http.MethodGet)
	api.HandleFunc("/spaces/availability", listAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/spaces/{spaceId}", getSpace.Handle).Methods(http.MethodGet)
	api.HandleFunc("/spaces/{spaceId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Webhook route: called by the payment provider, not by residents
	api.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// Protected routes: require the X-User-ID header
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/spaces/{spaceId}/reservations", getSpaceReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/payments", createPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments/{paymentId}/status", updatePaymentStatus.Handle).Methods(http.MethodPut)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
