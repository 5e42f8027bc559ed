package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"hindispell/internal/api"
	"hindispell/internal/config"
	sc "hindispell/internal/corrector"
	"hindispell/internal/customdict"
	"hindispell/internal/frequency"
	"hindispell/internal/modelstore"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	idx, err := loadIndex(ctx, cfg, logger)
	if err != nil {
		logger.Error("init error", "error", err)
		os.Exit(1)
	}
	idx = mergeCustomWords(ctx, cfg, idx, logger)

	corrector, err := sc.NewSpellCorrector(idx, cfg.CorrectorOptions()...)
	if err != nil {
		logger.Error("init error", "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewHandler(corrector, logger, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", "error", err)
		}
	}()

	logger.Info("listening", "addr", cfg.HTTPAddr, "words", idx.Len())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("serve", "error", err)
		os.Exit(1)
	}
}

func loadIndex(ctx context.Context, cfg config.Config, logger *slog.Logger) (*frequency.Index, error) {
	store, err := modelstore.Open(cfg.ModelURI, logger)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	start := time.Now()
	idx, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("model loaded",
		"uri", cfg.ModelURI,
		"words", idx.Len(),
		"total", idx.Total(),
		"took", time.Since(start))
	return idx, nil
}

// mergeCustomWords adds the user dictionary to idx. A missing or unreachable
// Redis only costs the custom words, so it is logged and skipped.
func mergeCustomWords(ctx context.Context, cfg config.Config, idx *frequency.Index, logger *slog.Logger) *frequency.Index {
	if cfg.Redis.Addr == "" {
		return idx
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	words, err := customdict.New(client, cfg.Redis.CustomDictKey).All(ctx)
	if err != nil {
		logger.Warn("custom dictionary skipped", "addr", cfg.Redis.Addr, "error", err)
		return idx
	}
	if len(words) == 0 {
		return idx
	}
	logger.Info("custom words merged", "count", len(words))
	return idx.WithWords(words, cfg.Correction.CustomWordFrequency)
}
