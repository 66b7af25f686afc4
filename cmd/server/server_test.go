package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskalign/posture-api/internal/analysis"
	"github.com/deskalign/posture-api/internal/config"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.New()
	// Generous limits so rate limiting never interferes with tests
	cfg.IPLimitPerMin = 100000
	cfg.AnalyzeLimitPerMin = 100000

	return newServer(cfg).setupRouter()
}

func postAnalyze(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "/analyze_posture", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decodeFeedback(t *testing.T, w *httptest.ResponseRecorder) analysis.Feedback {
	t.Helper()
	var fb analysis.Feedback
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fb))
	return fb
}

func TestRootEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Posture Assistant API is running!")
}

func TestFaviconReturnsNoContent(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/favicon.ico", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ok", health["status"])
	assert.Contains(t, health, "metrics")
}

func TestDeskSetupEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/desk_setup", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tips []string `json:"tips"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Tips, 7)
	assert.Contains(t, resp.Tips[0], "Monitor")
}

func TestAnalyzePosture_SignificantShoulderIssue(t *testing.T) {
	r := newTestRouter(t)

	w := postAnalyze(t, r, `{
		"metrics": {
			"shoulderAngle": 12.0,
			"torsoAngleFromVertical": 2.0,
			"spineHorizontalOffsetRatio": 0.05,
			"headForwardRatio": 0.05
		},
		"issues": []
	}`)

	assert.Equal(t, http.StatusOK, w.Code)

	fb := decodeFeedback(t, w)
	require.NotNil(t, fb.Score)
	assert.Equal(t, 78, *fb.Score)
	assert.Contains(t, fb.Assessment, "Shoulders significantly uneven")
	assert.Contains(t, fb.Recommendations, "Sit evenly, relax shoulders.")
	assert.Len(t, fb.MaintenanceTips, 5)
	require.NotNil(t, fb.Benefits)
	assert.NotEmpty(t, *fb.Benefits)
}

func TestAnalyzePosture_CleanMetricsScoreHundred(t *testing.T) {
	r := newTestRouter(t)

	w := postAnalyze(t, r, `{
		"metrics": {
			"shoulderAngle": 1.0,
			"torsoAngleFromVertical": 2.0,
			"spineHorizontalOffsetRatio": 0.05,
			"headForwardRatio": 0.05
		},
		"issues": []
	}`)

	assert.Equal(t, http.StatusOK, w.Code)

	fb := decodeFeedback(t, w)
	require.NotNil(t, fb.Score)
	assert.Equal(t, 100, *fb.Score)
	assert.Equal(t, "Posture looks great! Keep it up.", fb.Assessment)
	assert.Empty(t, fb.Recommendations)
	assert.Len(t, fb.MaintenanceTips, 5)
	assert.NotNil(t, fb.Benefits)
}

func TestAnalyzePosture_VisibilityOnly(t *testing.T) {
	r := newTestRouter(t)

	w := postAnalyze(t, r, `{
		"metrics": {},
		"issues": ["visibility: low light"]
	}`)

	assert.Equal(t, http.StatusOK, w.Code)

	fb := decodeFeedback(t, w)
	assert.Nil(t, fb.Score)
	assert.Contains(t, fb.Assessment, "visibility")
	assert.Empty(t, fb.Recommendations)
	assert.Empty(t, fb.MaintenanceTips)
	assert.Nil(t, fb.Benefits)
}

func TestAnalyzePosture_InvalidJSON(t *testing.T) {
	r := newTestRouter(t)

	w := postAnalyze(t, r, `{"metrics": not-json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzePosture_WrongContentType(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/analyze_posture", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestAnalyzePosture_EmptyBodyDefaults(t *testing.T) {
	r := newTestRouter(t)

	w := postAnalyze(t, r, `{}`)

	assert.Equal(t, http.StatusOK, w.Code)

	fb := decodeFeedback(t, w)
	assert.Nil(t, fb.Score)
	assert.Equal(t, "Posture analysis indicates good alignment.", fb.Assessment)
}

func TestSecurityHeaders(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestCORSAllowsKnownOrigin(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("OPTIONS", "/analyze_posture", nil)
	req.Header.Set("Origin", "http://127.0.0.1:5500")
	req.Header.Set("Access-Control-Request-Method", "POST")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://127.0.0.1:5500", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Contains(t, stats, "total_requests")
}

func TestPrometheusEndpoint(t *testing.T) {
	r := newTestRouter(t)

	// Generate some traffic first
	postAnalyze(t, r, `{"metrics": {"shoulderAngle": 1.0}, "issues": []}`)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics/prometheus", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "posture_engine_analyses_total")
}

func TestCacheStatsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/cache/stats", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Contains(t, stats, "total_items")
}

func TestRateLimitStatsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ratelimit/stats", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, false, stats["redis_enabled"])
}

func TestAnalyzePosture_CacheReturnsSameResponse(t *testing.T) {
	r := newTestRouter(t)

	body := `{"metrics": {"torsoAngleFromVertical": 25.0}, "issues": []}`

	first := postAnalyze(t, r, body)
	second := postAnalyze(t, r, body)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}
