package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"example.com/workoutlog/internal/config"
	"example.com/workoutlog/internal/consumer"
	"example.com/workoutlog/internal/logging"
	"example.com/workoutlog/internal/outbox"
	"example.com/workoutlog/internal/persistence/postgres"
	httptransport "example.com/workoutlog/internal/transport/http"
)

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

	handler := consumer.NewAuditHandler(pool)

	metricsAddress := cfg.MetricsAddress
	if metricsAddress == "" {
		metricsAddress = ":9103"
	}
	metricsServer := httptransport.NewServer(httptransport.DefaultServerConfig(metricsAddress), promhttp.Handler())
	httptransport.ListenInBackground("consumer metrics", metricsServer)

	topics := cfg.ConsumerTopics
	if len(topics) == 0 {
		topics = outbox.Topics()
	}

	var wg sync.WaitGroup
	for _, topic := range topics {
		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers:         cfg.KafkaBrokers,
			GroupID:         cfg.ConsumerGroupID,
			Topic:           topic,
			MinBytes:        1e3,
			MaxBytes:        10e6,
			CommitInterval:  time.Second,
			RetentionTime:   24 * time.Hour,
			ReadLagInterval: -1,
		})
		proc := consumer.NewProcessor(reader, handler, consumer.WithLogger(log.WithField("topic", topic)))

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer reader.Close()

			log.Infof("consumer started (topic=%s, group=%s)", topic, cfg.ConsumerGroupID)
			if err := proc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Errorf("consumer stopped (topic=%s): %s", topic, err)
			}
		}()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Infoln("consumer shutdown requested")
	cancel()

	if err := httptransport.Shutdown(metricsServer, 10*time.Second); err != nil {
		log.Errorf("metrics server shutdown: %s", err)
	}
	wg.Wait()
}
