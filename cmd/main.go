package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akhilak5/cafe-ops/internal/adapter/logger"
	"github.com/akhilak5/cafe-ops/internal/adapter/metrics"
	"github.com/akhilak5/cafe-ops/internal/adapter/postgres"
	"github.com/akhilak5/cafe-ops/internal/adapter/rabbitmq"
	"github.com/akhilak5/cafe-ops/internal/adapter/seenfile"
	"github.com/akhilak5/cafe-ops/internal/app/assignment"
	"github.com/akhilak5/cafe-ops/internal/app/lifecycle"
	"github.com/akhilak5/cafe-ops/internal/app/notify"
	"github.com/akhilak5/cafe-ops/internal/app/ordering"
	"github.com/akhilak5/cafe-ops/internal/app/station"
	"github.com/akhilak5/cafe-ops/internal/app/workload"
	"github.com/akhilak5/cafe-ops/internal/config"
	"github.com/akhilak5/cafe-ops/internal/domain"

	amqpAdapter "github.com/akhilak5/cafe-ops/internal/adapter/amqp"
	httpAdapter "github.com/akhilak5/cafe-ops/internal/adapter/http"
	"github.com/akhilak5/cafe-ops/internal/adapter/httpclient"
)

func main() {
	mode := flag.String("mode", "", "Service mode: api, station, notifier")
	port := flag.Int("port", 0, "HTTP port (api mode, overrides config)")
	staffID := flag.Int("staff-id", 0, "Staff id of the session (station mode)")
	role := flag.String("role", "", "Staff role: CHEF, WAITER, ADMIN (station mode)")
	storeURL := flag.String("store-url", "http://localhost:8080", "Order store base URL (station mode)")
	pollInterval := flag.Int("poll-interval", 0, "Poll interval in seconds (station mode, overrides config)")
	flag.Parse()

	if *mode == "" {
		log.Fatal("--mode flag is required")
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	lgr := logger.New(*mode)

	switch *mode {
	case "api":
		if *port != 0 {
			cfg.HTTP.Port = *port
		}
		runAPI(ctx, cfg, lgr)

	case "station":
		if *staffID == 0 {
			log.Fatal("--staff-id is required for station mode")
		}
		staffRole := domain.Role(*role)
		if staffRole != domain.RoleChef && staffRole != domain.RoleWaiter && staffRole != domain.RoleAdmin {
			log.Fatalf("Invalid role: %s", *role)
		}
		if *pollInterval > 0 {
			cfg.Sync.IntervalSeconds = *pollInterval
		}
		runStation(ctx, cfg, lgr, *staffID, staffRole, *storeURL)

	case "notifier":
		runNotifier(ctx, cfg, lgr)

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func runAPI(ctx context.Context, cfg *config.Config, lgr logger.Logger) {
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	lgr.Info("db_connected", "Connected to PostgreSQL database", "", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	orderRepo := postgres.NewOrderRepository(db)
	staffRepo := postgres.NewStaffRepository(db)
	publisher := rabbitmq.NewPublisher(mqConn)

	orderingService := ordering.NewService(orderRepo, publisher, lgr)
	lifecycleService := lifecycle.NewService(orderRepo, publisher, lgr)
	assignmentService := assignment.NewService(orderRepo, staffRepo, publisher, lgr)
	workloadService := workload.NewService(orderRepo, staffRepo, lgr,
		time.Duration(cfg.Sync.ServingCeilingMinutes)*time.Minute)

	srvMetrics := metrics.NewServerMetrics("api")

	orderHandler := httpAdapter.NewOrderHandler(orderingService, lifecycleService, assignmentService, orderRepo, srvMetrics, lgr)
	staffHandler := httpAdapter.NewStaffHandler(staffRepo, lgr)
	workloadHandler := httpAdapter.NewWorkloadHandler(workloadService, lgr)

	mux := http.NewServeMux()
	mux.HandleFunc("/orders", orderHandler.HandleOrders)
	mux.HandleFunc("/orders/", orderHandler.HandleOrderByID)
	mux.HandleFunc("/staff", staffHandler.ListStaff)
	mux.HandleFunc("/admin/chefs/workload", workloadHandler.GetChefWorkload)
	mux.HandleFunc("/admin/waiters/workload", workloadHandler.GetWaiterWorkload)
	mux.Handle("/metrics", metrics.Handler())

	handler := httpAdapter.MetricsMiddleware(srvMetrics)(mux)
	handler = httpAdapter.LoggingMiddleware(lgr)(handler)
	handler = httpAdapter.RecoveryMiddleware(lgr)(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("API started on port %d", cfg.HTTP.Port), "", map[string]interface{}{
		"port": cfg.HTTP.Port,
	})

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down API", "", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "", nil, err)
	}
}

func runStation(ctx context.Context, cfg *config.Config, lgr logger.Logger, staffID int, role domain.Role, storeURL string) {
	store := seenfile.New(cfg.Sync.StateDir)
	tracker, err := notify.NewTracker(store, fmt.Sprintf("staff-%d", staffID))
	if err != nil {
		log.Fatalf("Failed to load seen-set: %v", err)
	}

	client := httpclient.New(storeURL)
	sess := station.Session{StaffID: staffID, Role: role}
	loop := station.NewLoop(client, sess, tracker, lgr,
		time.Duration(cfg.Sync.IntervalSeconds)*time.Second)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	lgr.Info("service_started", fmt.Sprintf("Station started for staff %d (%s)", staffID, role), "", map[string]interface{}{
		"staff_id": staffID,
		"role":     role,
		"interval": cfg.Sync.IntervalSeconds,
	})

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down station", "", nil)
		cancel()
	}()

	if err := loop.Run(runCtx); err != nil && err != context.Canceled {
		lgr.Error("station_error", "Station loop error", "", nil, err)
	}
}

func runNotifier(ctx context.Context, cfg *config.Config, lgr logger.Logger) {
	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	consumer := rabbitmq.NewConsumer(mqConn, 1)
	handler := amqpAdapter.NewNotificationHandler(lgr)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	lgr.Info("service_started", "Notifier started", "", nil)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down notifier", "", nil)
		cancel()
	}()

	if err := consumer.ConsumeOrderEvents(runCtx, handler.HandleNotification); err != nil && err != context.Canceled {
		lgr.Error("consumer_error", "Error consuming events", "", nil, err)
	}
}
