package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hindispell/internal/corrector"
	"hindispell/internal/frequency"
	"hindispell/pkg/options"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	idx, err := frequency.NewIndex(map[string]int64{
		"महत्वपूर्ण": 500, "विषय": 300, "यह": 100, "एक": 100, "है": 100,
		"कम": 5, "कल": 5, "कर": 9,
	})
	require.NoError(t, err)
	sc, err := corrector.NewSpellCorrector(idx, options.WithTopKSuggestions(2))
	require.NoError(t, err)
	return NewHandler(sc, nil, prometheus.NewRegistry())
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCorrect(t *testing.T) {
	h := newTestHandler(t)
	rec := do(t, h, http.MethodPost, "/api/v1/correct", `{"text": "यह एक महत्वपुर्ण विषय्य है। अज्ञात"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp correctResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "यह एक महत्वपूर्ण विषय है। अज्ञात", resp.Corrected)
	assert.Equal(t, []string{"महत्वपुर्ण", "विषय्य", "अज्ञात"}, resp.Misspelled)
	assert.Equal(t, "विषय", resp.Suggestions["विषय्य"][0].Term)

	metrics := do(t, h, http.MethodGet, "/metrics", "").Body.String()
	assert.Contains(t, metrics, `hindispell_tokens_total{outcome="known"} 3`)
	assert.Contains(t, metrics, `hindispell_tokens_total{outcome="corrected"} 2`)
	assert.Contains(t, metrics, `hindispell_tokens_total{outcome="uncorrected"} 1`)
}

func TestCorrectBadRequests(t *testing.T) {
	h := newTestHandler(t)
	for _, body := range []string{``, `{`, `{"text": "   "}`, `{"text": 5}`} {
		rec := do(t, h, http.MethodPost, "/api/v1/correct", body)
		assert.Equalf(t, http.StatusBadRequest, rec.Code, "body %q", body)
		assert.Contains(t, rec.Body.String(), "invalid request")
	}
	rec := do(t, h, http.MethodGet, "/api/v1/correct", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSuggestTruncatesToTopK(t *testing.T) {
	h := newTestHandler(t)
	rec := do(t, h, http.MethodPost, "/api/v1/suggest", `{"word": "कप"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Word        string                 `json:"word"`
		Suggestions corrector.CandidateSet `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "कप", resp.Word)
	assert.Equal(t, []string{"कर", "कम"}, resp.Suggestions.Terms(0))
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)
	rec := do(t, h, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok", "words": 8}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestHandler(t)
	do(t, h, http.MethodPost, "/api/v1/correct", `{"text": "विषय"}`)
	do(t, h, http.MethodPost, "/api/v1/correct", `{}`)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `hindispell_http_requests_total{code="200",route="correct"} 1`)
	assert.Contains(t, body, `hindispell_http_requests_total{code="400",route="correct"} 1`)
	assert.Contains(t, body, "hindispell_model_words 8")
}
