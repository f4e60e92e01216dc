package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Dtgosha/est92-resort2/internal/admin"
	"github.com/Dtgosha/est92-resort2/internal/api"
	"github.com/Dtgosha/est92-resort2/internal/auth"
	"github.com/Dtgosha/est92-resort2/internal/config"
	"github.com/Dtgosha/est92-resort2/internal/events"
	"github.com/Dtgosha/est92-resort2/internal/kv"
	"github.com/Dtgosha/est92-resort2/internal/metrics"
	"github.com/Dtgosha/est92-resort2/internal/notify"
	"github.com/Dtgosha/est92-resort2/internal/pricing"
	"github.com/Dtgosha/est92-resort2/internal/service"
	"github.com/Dtgosha/est92-resort2/internal/store"
)

func main() {
	_ = godotenv.Load()

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	cfg, err := config.Load(os.Getenv("RESORT_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if len(cfg.Admins) == 0 {
		logger.Fatal().Msg("set at least one admin account in config")
	}

	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		slot  kv.Slot
		sqldb *kv.SQLiteStore
		rdb   *redis.Client
	)
	switch cfg.Storage.Backend {
	case "redis":
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		slot = kv.NewRedisSlot(rdb, cfg.Storage.Key)
	case "sqlite":
		sqldb, err = kv.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			logger.Fatal().Err(err).Msg("open sqlite store error")
		}
		defer sqldb.Close()
		slot = sqldb.Slot(cfg.Storage.Key)
	default:
		slot = kv.NewMemorySlot()
		logger.Warn().Msg("memory storage selected, bookings will not survive a restart")
	}

	bookings := store.New(slot, logger)

	snapshotter := store.NewSnapshotter(slot, store.SnapshotConfig{
		Enabled:       cfg.Snapshots.Enabled,
		Interval:      cfg.SnapshotInterval(),
		Path:          cfg.Snapshots.Path,
		RetentionDays: cfg.Snapshots.RetentionDays,
	}, &logger)
	go snapshotter.Start(ctx)

	cat := cfg.Catalog()
	engine := pricing.NewEngine(cat,
		pricing.Cents(cfg.Pricing.ConferenceNightCents),
		pricing.Cents(cfg.Pricing.RestaurantCoverCents),
	)

	bus := events.NewBus()
	bus.Subscribe(events.TypeBookingConfirmed, func(e events.Event) error {
		logger.Debug().Str("event", e.Type).RawJSON("payload", e.Payload).Msg("domain event")
		return nil
	})

	notifier := buildNotifier(cfg, logger)

	bookingService := service.NewBookingService(bookings, engine, cat, bus, notifier, &logger)

	sessions := auth.NewSessionStore(cfg.SessionIdle())
	gate := auth.NewGate(cfg.Credentials(), sessions, logger)
	go sessionCleanupLoop(ctx, sessions, &logger)

	dashboard := admin.NewDashboard(bookings, bus, logger)

	apiServer := api.NewHTTPServer(cfg.API.Port, bookingService, gate, dashboard, logger)
	go apiServer.Start(ctx)

	if cfg.Monitoring.HealthCheckPort == 0 {
		cfg.Monitoring.HealthCheckPort = 8090
	}
	go startHealthServer(ctx, cfg.Monitoring.HealthCheckPort, sqldb, rdb, &logger)

	if cfg.Monitoring.PrometheusEnabled {
		if cfg.Monitoring.PrometheusPort == 0 {
			cfg.Monitoring.PrometheusPort = 9090
		}
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	logger.Info().
		Str("backend", cfg.Storage.Backend).
		Int("admins", len(cfg.Admins)).
		Msg("resort booking service started")

	<-ctx.Done()
	logger.Info().Msg("shutting down")
}

func buildNotifier(cfg *config.Config, logger zerolog.Logger) service.Notifier {
	var channel notify.Notifier
	switch cfg.Notifications.Channel {
	case "mail":
		channel = notify.NewMailRelay(cfg.Notifications.Mail.BaseURL, cfg.Notifications.Mail.APIKey)
	case "telegram":
		tg, err := notify.NewTelegram(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
		if err != nil {
			logger.Error().Err(err).Msg("telegram notifier unavailable, notifications disabled")
			return nil
		}
		channel = tg
	default:
		logger.Info().Msg("operator notifications disabled")
		return nil
	}

	return notify.NewSender(channel,
		cfg.Notifications.Recipient,
		cfg.Notifications.RecipientName,
		notify.DefaultRetryConfig(),
		logger,
	)
}

func sessionCleanupLoop(ctx context.Context, sessions *auth.SessionStore, logger *zerolog.Logger) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := sessions.Cleanup(); removed > 0 {
				logger.Debug().Int("removed", removed).Msg("expired admin sessions cleaned up")
			}
		}
	}
}

func startHealthServer(ctx context.Context, port int, sqldb *kv.SQLiteStore, rdb *redis.Client, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		ctxPing, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if sqldb != nil {
			if err := sqldb.Ping(ctxPing); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		if rdb != nil {
			if err := rdb.Ping(ctxPing).Err(); err != nil {
				http.Error(w, "redis not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("health server error")
	}
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
