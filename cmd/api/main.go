package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/multierr"

	"example.com/workoutlog/internal/api"
	"example.com/workoutlog/internal/auth"
	"example.com/workoutlog/internal/config"
	"example.com/workoutlog/internal/domain"
	"example.com/workoutlog/internal/logging"
	"example.com/workoutlog/internal/outbox"
	"example.com/workoutlog/internal/persistence/memory"
	"example.com/workoutlog/internal/persistence/postgres"
	"example.com/workoutlog/internal/telemetry/tracing"
	httptransport "example.com/workoutlog/internal/transport/http"
)

const serviceName = "workout-log"

func main() {
	env := flag.String("env", "development", "environment section of the config file [development|production]")
	configPath := flag.String("config", "", "path for the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogFile,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogJSON,
	})

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("config: %s", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var closers []func() error

	if cfg.TracingEnabled {
		tp, err := tracing.Setup(serviceName, cfg.TracingEndpoint)
		if err != nil {
			log.Fatalf("tracing: %s", err)
		}
		closers = append(closers, func() error { return tp.Shutdown(context.Background()) })
	} else {
		log.Debugln("tracing disabled")
	}

	var (
		store      domain.Store
		pool       *pgxpool.Pool
		dispatcher *outbox.Dispatcher
	)
	if cfg.PostgresURL == "" {
		log.Warnln("POSTGRES_URL not set, sessions are kept in memory")
		store = memory.NewStore()
	} else {
		pool, err = postgres.NewPool(ctx, postgres.NewPoolParams{
			URL:            cfg.PostgresURL,
			TracingEnabled: cfg.TracingEnabled,
		})
		if err != nil {
			log.Fatalf("postgres: %s", err)
		}
		prometheus.MustRegister(pgxpoolprometheus.NewCollector(pool, map[string]string{"db_name": "workout_log"}))
		store = postgres.NewStore(pool)

		if cfg.OutboxEnabled {
			producer := outbox.NewKafkaProducer(cfg.KafkaBrokers)
			closers = append(closers, producer.Close)
			registry := outbox.NewSchemaRegistryClient(cfg.SchemaRegistryURL)
			dispatcher = outbox.NewDispatcher(pool, producer, registry, cfg.OutboxPollInterval, cfg.OutboxBatchSize)
			go dispatcher.Start(ctx)
		}
	}

	service := domain.NewService(store, domain.WithLocation(loc))

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("workout-log-router"))
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	api.NewHandler(service).RegisterRoutes(r)

	authMiddleware := auth.NewMiddleware(auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer})
	server := httptransport.NewServer(
		httptransport.DefaultServerConfig(cfg.HTTPAddress),
		api.LogRequests(authMiddleware.Wrap(r)),
	)
	httptransport.ListenInBackground(serviceName, server)

	var metricsServer *http.Server
	if cfg.MetricsAddress != "" {
		metricsServer = httptransport.NewServer(httptransport.DefaultServerConfig(cfg.MetricsAddress), promhttp.Handler())
		httptransport.ListenInBackground("metrics", metricsServer)
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	receivedSig := <-shutdownCh
	log.Warnf("signal [%s] received, shutting down", receivedSig)
	cancel()

	err = httptransport.Shutdown(server, 15*time.Second)
	if metricsServer != nil {
		err = multierr.Append(err, httptransport.Shutdown(metricsServer, 5*time.Second))
	}
	if dispatcher != nil {
		dispatcher.Wait()
	}
	for _, closeFn := range closers {
		err = multierr.Append(err, closeFn())
	}
	if pool != nil {
		pool.Close()
	}
	if err != nil {
		log.Errorf("shutdown: %s", err)
		os.Exit(1)
	}
	log.Infoln("bye")
}
