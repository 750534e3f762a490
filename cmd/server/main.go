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

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/metrics"
	"github.com/Zachkp/portfolio/internal/notify"
	"github.com/Zachkp/portfolio/internal/portfolio"
	"github.com/Zachkp/portfolio/internal/ratelimit"
	"github.com/Zachkp/portfolio/internal/server"
	"github.com/Zachkp/portfolio/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Production())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	content, err := loadContent(cfg.PortfolioContent)
	if err != nil {
		return fmt.Errorf("load portfolio content: %w", err)
	}

	// The database is opened on the first contact submission.
	st := store.New(cfg.DatabasePath)
	defer st.Close()

	m := metrics.New()

	opts := []contact.Option{contact.WithRecorder(m)}
	if cfg.NotificationsEnabled() {
		n, err := notify.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.ToEmail)
		if err != nil {
			return fmt.Errorf("init notifier: %w", err)
		}
		opts = append(opts, contact.WithNotifier(n))
		logger.Info("contact notifications enabled", zap.String("smtp_host", cfg.SMTPHost))
	} else {
		logger.Info("contact notifications disabled: SMTP credentials not set")
	}
	svc := contact.NewService(logger, st, opts...)

	var limiter ratelimit.Limiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis unreachable, rate limiter will fail open", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		cancel()

		limiter = ratelimit.NewRedisLimiter(rdb, cfg.ContactRateWindow, cfg.ContactRateLimit)
		logger.Info("contact rate limiting enabled",
			zap.Int("max", cfg.ContactRateLimit),
			zap.Duration("window", cfg.ContactRateWindow))
	}

	hasher, err := server.NewIPHasher()
	if err != nil {
		return fmt.Errorf("init ip hasher: %w", err)
	}

	router := server.NewRouter(server.Deps{
		Logger:  logger,
		Contact: svc,
		Store:   st,
		Content: content,
		Metrics: m,
		Limiter: limiter,
		Hasher:  hasher,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	svc.Wait()
	return nil
}

func loadContent(path string) (*portfolio.Content, error) {
	if path == "" {
		return portfolio.Default()
	}
	return portfolio.Load(path)
}
