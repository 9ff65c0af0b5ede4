package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"pulse/auth"
	"pulse/infrastructure/api"
	"pulse/infrastructure/storage"
	"pulse/infrastructure/ws"
	"pulse/internal"
	"pulse/moderation"
	"pulse/observability"
	"pulse/runtime"
	"pulse/runtime/workers"
	"pulse/services"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// Returning instead of exiting lets every defer (database close) run first.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	monitoring := observability.NewMonitoringManager(registry)

	// 4. Supervision & Orchestration
	sup := workers.NewSupervisor(log, config.RestartInterval)
	orchestrator := runtime.NewOrchestrator(log, sup, monitoring, runtime.Options{
		BufferSize:        config.BufferSize,
		PresenceDebounce:  config.PresenceDebounce,
		FanoutBatchSize:   config.FanoutBatchSize,
		FanoutConcurrency: config.FanoutConcurrency,
	})

	var moderator services.TextModerator
	if config.CensoredWordsDir != "" {
		dictionary, err := moderation.LoadDictionary(os.DirFS(config.CensoredWordsDir), ".")
		if err != nil {
			return exitConfig, fmt.Errorf("censored words loading failed: %w", err)
		}
		mod, err := moderation.NewModerator(dictionary.Words, config.CensoredRune(), log)
		if err != nil {
			return exitConfig, fmt.Errorf("moderator init failed: %w", err)
		}
		if mod != nil {
			moderator = mod
		}
		log.Info("Censored words loaded", "words", len(dictionary.Words), "languages", dictionary.Languages)
	}

	notificationRepository := storage.NewNotificationRepository(db, log, config.LimitNotifications)
	notificationService := services.NewNotificationService(log,
		orchestrator.Emitter(), orchestrator, notificationRepository, moderator)

	// 5. HTTP surface
	issuer := auth.NewTokenIssuer(config.AuthSecret, config.AuthTokenDuration)
	wsHandler := ws.NewHandler(log, orchestrator.Router(), config.Origins(), ws.Options{
		BufferSize:     config.ConnectionBufferSize,
		WriteTimeout:   config.WriteTimeout,
		PongTimeout:    config.PongTimeout,
		MaxMessageSize: config.MaxMessageSize,
	})
	handler := api.NewHandler(log, notificationService, orchestrator.Registry(), monitoring, issuer).
		Routes(wsHandler, registry)

	// 6. gRPC health
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	orchestrator.Add(
		workers.NewHTTPServerWorker(log, fmt.Sprintf("%s:%d", config.Host, config.Port), handler, config.ShutdownTimeout),
		workers.NewGRPCServerWorker(log, fmt.Sprintf("%s:%d", config.Host, config.GRPCPort), grpcServer),
		workers.NewStatsWorker(log, monitoring, config.StatsInterval),
	)

	// 7. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 8. Run until a signal stops the supervisor
	if err := orchestrator.Start(ctx); err != nil {
		return exitRuntime, fmt.Errorf("orchestrator error: %w", err)
	}
	healthServer.Shutdown()
	log.Info("Program stopped cleanly")
	return exitOK, nil
}
