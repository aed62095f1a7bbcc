package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	_ "callorder/docs"
	"callorder/pkg/config"
	"callorder/pkg/event"
	pg "callorder/pkg/event/postgres"
	eventredis "callorder/pkg/event/redis"
	"callorder/pkg/httpapi"
	"callorder/pkg/logger"
	"callorder/pkg/metrics"
	"callorder/pkg/otel"
	"callorder/pkg/service"
	"callorder/pkg/store"
)

// @title Call Order API
// @version 1.0
// @description Tracks calls and the order built during each one.
// @host localhost:3000
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "callorder:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logger.New(os.Stdout, level, "callorder", otel.GetTraceID)
	defer log.Sync()

	tp, shutdownTracing, err := otel.InitTracing(log, otel.Config{ServiceName: "callorder", Host: cfg.OTelHost, Probability: cfg.OTelProbability})
	if err != nil {
		return err
	}
	defer shutdownTracing(context.Background())

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancelCause(sigCtx)
	defer cancel(nil)

	var pubs event.Multi
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		pubs = append(pubs, eventredis.New(client, cfg.RedisChannel))
		log.Info(ctx, "publishing events to redis", "addr", cfg.RedisAddr, "channel", cfg.RedisChannel)
	}
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer db.Close()
		journal := pg.New(db)
		if err := journal.Migrate(ctx); err != nil {
			return err
		}
		pubs = append(pubs, journal)
		log.Info(ctx, "journaling events to postgres")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	st := store.New()
	metrics.RegisterStateGauges(reg, st.Stats)
	svc := service.New(service.Config{
		Store:     st,
		Log:       log,
		Metrics:   metrics.New(reg),
		Publisher: pubs,
		// The store cannot be trusted after a fatal error; stop serving.
		OnFatal:   func(err error) { cancel(err) },
	})

	opts := httpapi.Options{Tracer: tp.Tracer("callorder")}
	if cfg.MetricsEnabled {
		opts.Gatherer = reg
	}
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.New(svc, log).Router(opts),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info(ctx, "listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancelShutdown()
		log.Info(shutdownCtx, "shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Error(context.Background(), "server closed", "error", err)
		return err
	}
	if cause := context.Cause(ctx); store.IsFatal(cause) {
		return fmt.Errorf("state store failed: %w", cause)
	}
	return nil
}
