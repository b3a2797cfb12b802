package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"biography-api/pkg/logger"
	"biography-api/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantSame bool
	}{
		{name: "generated when absent"},
		{name: "propagated from header", header: "abc-123", wantSame: true},
		{name: "oversized header replaced", header: strings.Repeat("x", maxRequestIDLen+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fromGin, fromCtx string
			r := gin.New()
			r.Use(RequestID())
			r.GET("/", func(c *gin.Context) {
				fromGin = c.GetString("request_id")
				fromCtx = logger.RequestID(c.Request.Context())
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if fromGin == "" || fromGin != fromCtx {
				t.Fatalf("request id gin=%q ctx=%q", fromGin, fromCtx)
			}
			if got := w.Header().Get(RequestIDHeader); got != fromGin {
				t.Errorf("response header = %q, want %q", got, fromGin)
			}
			if tt.wantSame {
				if fromGin != tt.header {
					t.Errorf("request id = %q, want %q", fromGin, tt.header)
				}
			} else if _, err := uuid.Parse(fromGin); err != nil {
				t.Errorf("generated request id %q is not a uuid: %v", fromGin, err)
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"error_code":"1007"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		origins    []string
		origin     string
		wantOrigin string
	}{
		{name: "wildcard echoes origin", origins: []string{"*"}, origin: "http://localhost:3000", wantOrigin: "http://localhost:3000"},
		{name: "empty allows all", origin: "https://client.example.org", wantOrigin: "https://client.example.org"},
		{name: "explicit allowed", origins: []string{"https://app.example.com"}, origin: "https://app.example.com", wantOrigin: "https://app.example.com"},
		{name: "explicit rejected", origins: []string{"https://app.example.com"}, origin: "https://evil.example.com", wantOrigin: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORS(CORSConfig{AllowedOrigins: tt.origins}))
			r.POST("/submit", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodOptions, "/submit", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if tt.wantOrigin != "" && w.Header().Get("Access-Control-Allow-Credentials") != "true" {
				t.Errorf("credentials not allowed")
			}
		})
	}
}

func TestMetrics(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/live", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	before := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/live", "200"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))
	after := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/live", "200"))

	if after-before != 1 {
		t.Errorf("requests_total delta = %v, want 1", after-before)
	}
}
