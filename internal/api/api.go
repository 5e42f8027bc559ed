// Package api exposes a correction session over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hindispell/internal/corrector"
	"hindispell/internal/frequency"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

type Server struct {
	corrector *corrector.SpellCorrector
	logger    *slog.Logger
	metrics   *Metrics
	topK      int
}

// NewHandler returns the HTTP routes for sc. Metrics are registered with
// reg and served from it on /metrics.
func NewHandler(sc *corrector.SpellCorrector, logger *slog.Logger, reg *prometheus.Registry) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		corrector: sc,
		logger:    logger,
		metrics:   NewMetrics(reg),
		topK:      sc.Options().TopKSuggestions,
	}
	if idx := sc.Index(); idx != nil {
		s.metrics.modelWords.Set(float64(idx.Len()))
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/correct", s.instrument("correct", s.handleCorrect))
	mux.Handle("/api/v1/suggest", s.instrument("suggest", s.handleSuggest))
	mux.Handle("/healthz", s.instrument("healthz", s.handleHealth))
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return mux
}

type correctResponse struct {
	Original    string                            `json:"original"`
	Corrected   string                            `json:"corrected"`
	Misspelled  []string                          `json:"misspelled"`
	Suggestions map[string]corrector.CandidateSet `json:"suggestions"`
}

func (s *Server) handleCorrect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := decode(w, r, &req); err != nil || strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	res, err := s.corrector.CorrectText(req.Text)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.countTokens(res)

	suggestions := make(map[string]corrector.CandidateSet, len(res.Candidates))
	for tok, cands := range res.Candidates {
		suggestions[tok] = s.truncate(cands)
	}
	s.logger.Debug("corrected text",
		"tokens", len(res.OriginalTokens),
		"misspelled", len(res.Misspelled))
	writeJSON(w, http.StatusOK, correctResponse{
		Original:    res.Original,
		Corrected:   res.Corrected,
		Misspelled:  res.Misspelled,
		Suggestions: suggestions,
	})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req struct {
		Word string `json:"word"`
	}
	if err := decode(w, r, &req); err != nil || strings.TrimSpace(req.Word) == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	cands, err := s.corrector.Rank(strings.TrimSpace(req.Word))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"word":        req.Word,
		"suggestions": s.truncate(cands),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	idx := s.corrector.Index()
	if idx == nil {
		writeError(w, http.StatusServiceUnavailable, frequency.ErrIndexUnavailable.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "words": idx.Len()})
}

func (s *Server) truncate(cs corrector.CandidateSet) corrector.CandidateSet {
	if len(cs) > s.topK {
		return cs[:s.topK]
	}
	return cs
}

func (s *Server) countTokens(res corrector.CorrectionResult) {
	for i, tok := range res.OriginalTokens {
		switch _, miss := res.Candidates[tok]; {
		case !miss:
			s.metrics.tokens.WithLabelValues("known").Inc()
		case res.CorrectedTokens[i] != tok:
			s.metrics.tokens.WithLabelValues("corrected").Inc()
		default:
			s.metrics.tokens.WithLabelValues("uncorrected").Inc()
		}
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, frequency.ErrIndexUnavailable) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.logger.Error("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(route string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		h(rec, r)
		s.metrics.latency.WithLabelValues(route).Observe(time.Since(start).Seconds())
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(rec.code)).Inc()
	})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
