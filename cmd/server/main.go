// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/skanenje/prompt-enhancer/internal/api"
	"github.com/skanenje/prompt-enhancer/internal/common/config"
	"github.com/skanenje/prompt-enhancer/internal/common/database"
	"github.com/skanenje/prompt-enhancer/internal/common/logger"
	"github.com/skanenje/prompt-enhancer/internal/common/observability"
	"github.com/skanenje/prompt-enhancer/internal/core/analyzer"
	"github.com/skanenje/prompt-enhancer/internal/core/evaluator"
	"github.com/skanenje/prompt-enhancer/internal/core/selector"
	"github.com/skanenje/prompt-enhancer/internal/core/synthesizer"
	"github.com/skanenje/prompt-enhancer/internal/enhancer"
	"github.com/skanenje/prompt-enhancer/internal/genai"
	"github.com/skanenje/prompt-enhancer/internal/store"
)

// retryWithBackoff attempts an operation with exponential backoff.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting prompt enhancer",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	// --- Framework store, optionally fronted by redis ---
	var frameworkStore store.Store = store.NewFileStore(cfg.Frameworks.Dir, log)
	if cfg.Redis.Enabled {
		rdb, err := database.NewRedis(cfg.Redis)
		if err != nil {
			zapLog.Fatal("redis init failed", zap.Error(err))
		}
		defer rdb.Close()

		err = retryWithBackoff(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			return rdb.Ping(ctx)
		}, 5, time.Second, zapLog, "redis ping")
		if err != nil {
			zapLog.Warn("redis unreachable, running without framework cache", zap.Error(err))
		} else {
			frameworkStore = store.NewCached(frameworkStore, rdb, cfg.Frameworks.CacheTTLDuration(), log)
		}
	}

	// --- External model, absent unless configured ---
	var model genai.Client
	if client := genai.New(&cfg.Model, log); client != nil {
		model = client
		zapLog.Info("external model configured", zap.String("baseUrl", cfg.Model.BaseURL))
	} else {
		zapLog.Info("no external model configured, running on local heuristics")
	}

	// --- Pipeline ---
	an := analyzer.New(analyzer.NewHeuristicParser())
	sel := selector.New(frameworkStore)
	syn := synthesizer.New(model, obs, log)
	ev := evaluator.New()
	service := enhancer.New(frameworkStore, an, sel, syn, ev, cfg.Frameworks.DefaultID, log, obs)

	handler := api.NewHandler(service, frameworkStore, log)
	router := api.NewRouter(&cfg.Server, handler, log)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		zapLog.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("stopped")
}
