package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"hindispell/internal/config"
	"hindispell/internal/customdict"
)

// Admin server for the custom dictionary. Words added here are picked up by
// the correction service the next time it starts.
func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Log, os.Stderr)

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer client.Close()

	dict := customdict.New(client, cfg.Redis.CustomDictKey)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/custom-word", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			words, err := dict.All(r.Context())
			if err != nil {
				logger.Error("list custom words", "error", err)
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
				return
			}
			writeJSON(w, http.StatusOK, map[string]interface{}{"words": words})
		case http.MethodPost:
			var req struct {
				Word string `json:"word"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Word) == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
				return
			}
			if err := dict.Add(r.Context(), req.Word); err != nil {
				writeDictError(w, logger, err)
				return
			}
			logger.Info("custom word added", "word", req.Word)
			writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
		default:
			http.NotFound(w, r)
		}
	})

	mux.HandleFunc("/api/v1/custom-word/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.NotFound(w, r)
			return
		}
		word := strings.TrimPrefix(r.URL.Path, "/api/v1/custom-word/")
		if word == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "word is required"})
			return
		}
		if err := dict.Remove(r.Context(), word); err != nil {
			writeDictError(w, logger, err)
			return
		}
		logger.Info("custom word removed", "word", word)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	logger.Info("listening", "addr", cfg.HTTPAddr, "redis", cfg.Redis.Addr)
	if err := http.ListenAndServe(cfg.HTTPAddr, mux); err != nil {
		logger.Error("serve", "error", err)
		os.Exit(1)
	}
}

func writeDictError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if errors.Is(err, customdict.ErrInvalidWord) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	logger.Error("custom dictionary", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
