package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/cart"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/catalog"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/config"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/course"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/db"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/events"
	httpapi "github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/http"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/inquiry"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/logging"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/metrics"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/notify"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/order"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/roles"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/sequence"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/task"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("portal stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- DB ---
	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer pool.Close()

	sqlDB, err := db.OpenSQL(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer sqlDB.Close()

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			return fmt.Errorf("db migrate: %w", err)
		}
	}

	validate := validation.New()
	registry := roles.NewRegistry(cfg.Roles)
	m := metrics.New()

	products := catalog.NewService(catalog.NewPostgresRepository(pool), validate, logger)

	// --- Cart store ---
	var store cart.Store = cart.NewMemoryStore()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		store = cart.NewRedisStore(rdb, cfg.CartTTL)
		logger.Info("cart store: redis", zap.String("addr", cfg.RedisAddr))
	} else {
		logger.Warn("cart store: memory, carts are lost on restart")
	}
	carts := cart.NewService(store, products, logger)

	// --- AMQP ---
	var publisher order.Publisher = events.NopPublisher{}
	if cfg.RabbitURL != "" && cfg.PublishEvents {
		conn, err := events.Dial(cfg.RabbitURL)
		if err != nil {
			return fmt.Errorf("rabbitmq dial: %w", err)
		}
		defer conn.Close()

		pub, err := events.NewPublisher(conn, sequence.NewRepository(pool), events.PublisherOptions{})
		if err != nil {
			return fmt.Errorf("init publisher: %w", err)
		}
		defer pub.Close()
		publisher = pub
	} else {
		logger.Info("event publishing disabled")
	}

	// --- Notifications ---
	var sender notify.Sender = notify.NewLogSender(logger)
	if cfg.SendGridAPIKey != "" {
		sg, err := notify.NewSendGridSender(cfg.SendGridAPIKey, cfg.MailFrom, logger)
		if err != nil {
			return fmt.Errorf("init sendgrid: %w", err)
		}
		sender = sg
	}

	workflow := order.NewWorkflow(order.Deps{
		Repo:      order.NewPostgresRepository(pool),
		Carts:     carts,
		Validate:  validate,
		Notifier:  notify.New(sender, logger),
		Publisher: publisher,
		Recorder:  m,
		Logger:    logger,
	})

	// --- HTTP ---
	router := httpapi.NewRouter(httpapi.Deps{
		Logger:           logger,
		Metrics:          m,
		Roles:            registry,
		JWTSecret:        cfg.JWTSecret,
		SecureCookies:    cfg.SecureCookies,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		Products:         products,
		Carts:            carts,
		Orders:           workflow,
		Courses:          course.NewService(course.NewRepository(sqlDB), validate, logger),
		Tasks:            task.NewService(task.NewRepository(sqlDB), validate, logger),
		Inquiries:        inquiry.NewService(inquiry.NewRepository(sqlDB), validate, logger),
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}

	logger.Info("shutdown complete")
	return nil
}
