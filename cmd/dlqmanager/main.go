package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"example.com/workoutlog/internal/config"
	"example.com/workoutlog/internal/logging"
	"example.com/workoutlog/internal/outbox"
	"example.com/workoutlog/internal/persistence/postgres"
	httptransport "example.com/workoutlog/internal/transport/http"
)

const defaultDLQBatchSize = 50

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
	if cfg.PostgresURL == "" {
		log.Fatalln("POSTGRES_URL is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, postgres.NewPoolParams{URL: cfg.PostgresURL, MaxConns: 4})
	if err != nil {
		log.Fatalf("postgres: %s", err)
	}
	defer pool.Close()
	prometheus.MustRegister(pgxpoolprometheus.NewCollector(pool, map[string]string{"db_name": "workout_log"}))

	metricsAddress := cfg.MetricsAddress
	if metricsAddress == "" {
		metricsAddress = ":9102"
	}
	metricsServer := httptransport.NewServer(httptransport.DefaultServerConfig(metricsAddress), promhttp.Handler())
	httptransport.ListenInBackground("dlq manager metrics", metricsServer)

	manager := outbox.NewDLQManager(pool, cfg.DLQMaxRetries, cfg.DLQBaseDelay)
	done := make(chan struct{})
	go func() {
		defer close(done)
		manager.Run(ctx, cfg.DLQPollInterval, defaultDLQBatchSize)
	}()
	log.Infof("DLQ manager started (interval=%s, maxRetries=%d)", cfg.DLQPollInterval, cfg.DLQMaxRetries)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Infoln("dlq manager received shutdown signal")
	cancel()
	<-done

	if err := httptransport.Shutdown(metricsServer, 10*time.Second); err != nil {
		log.Errorf("metrics server shutdown: %s", err)
	}
}
