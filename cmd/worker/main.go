// The outbox worker. Drains the deferred-effect queue the API server
// enqueues into and delivers the resulting mails.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/config"
	"github.com/jrjohn/academy-cloud-go/internal/mail"
	"github.com/jrjohn/academy-cloud-go/internal/observability"
	"github.com/jrjohn/academy-cloud-go/internal/outbox"
	"github.com/jrjohn/academy-cloud-go/pkg/logger"
)

func main() {
	cfg, log := mustLoadConfig()
	defer log.Sync()

	log.Info("Starting Academy Cloud Worker",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient := mustConnectRedis(ctx, cfg, log)
	defer redisClient.Close()

	mailer := mustBuildMailer(cfg, log)
	metrics := observability.NewMetrics(&cfg.Observability, log)

	queue := outbox.NewRedisQueue(redisClient)
	pool := outbox.NewPool(&cfg.Outbox, queue, metrics, log)
	outbox.RegisterMailHandlers(pool, mailer)

	sweeper := outbox.NewSweeper(&cfg.Outbox, queue, log)

	if err := pool.Start(ctx); err != nil {
		log.Fatal("Failed to start outbox pool", zap.Error(err))
	}
	if err := sweeper.Start(); err != nil {
		log.Fatal("Failed to start outbox sweeper", zap.Error(err))
	}

	go startMetricsServer(ctx, queue, metrics, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutdown signal received, stopping workers...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Outbox.ShutdownTimeout)
	defer shutdownCancel()

	sweeper.Stop()
	if err := pool.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping outbox pool", zap.Error(err))
	}
	log.Info("Worker shutdown complete")
}

func mustLoadConfig() (*config.Config, *zap.Logger) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: cfg.App.Debug,
		Encoding:    "json",
	})
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	return cfg, log
}

func mustConnectRedis(ctx context.Context, cfg *config.Config, log *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr()))
	return client
}

func mustBuildMailer(cfg *config.Config, log *zap.Logger) mail.Mailer {
	renderer, err := mail.NewTemplateRenderer(cfg.Mail.TemplateDir, log)
	if err != nil {
		log.Fatal("Failed to load mail templates", zap.Error(err))
	}
	if cfg.Mail.HotReload {
		if err := renderer.Watch(); err != nil {
			log.Warn("Template hot reload unavailable", zap.Error(err))
		}
	}
	return mail.NewBrevoMailer(&cfg.Mail, renderer, log)
}

func startMetricsServer(ctx context.Context, queue outbox.Queue, metrics *observability.Metrics, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		stats, err := queue.Stats(r.Context())
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `{"status":"unhealthy","error":%q}`, err.Error())
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","ready":%d,"scheduled":%d,"dead":%d}`,
			stats["ready"], stats["scheduled"], stats["dead"])
	})

	port := os.Getenv("METRICS_PORT")
	if port == "" {
		port = "9100"
	}

	server := &http.Server{Addr: ":" + port, Handler: mux}
	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	log.Info("Starting metrics server", zap.String("port", port))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("Metrics server error", zap.Error(err))
	}
}
