package handler

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/gin-gonic/gin"

	"biography-api/internal/infrastructure/llm/llmtest"
)

type fakeModels struct{ err error }

func (f fakeModels) Default(ctx context.Context) (model.BaseChatModel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llmtest.ChatModel{}, nil
}

type fakeChecker struct{ err error }

func (f fakeChecker) HealthCheck(ctx context.Context) error { return f.err }

func serve(h gin.HandlerFunc, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET(path, h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthHandler_Health(t *testing.T) {
	h := NewHealthHandler(nil, nil, "v1.2.3")
	w := serve(h.Health, "/health")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "ok" || resp.Version != "v1.2.3" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestHealthHandler_Ready(t *testing.T) {
	tests := []struct {
		name       string
		models     ModelProvider
		output     HealthChecker
		wantStatus int
		wantChecks map[string]string
	}{
		{
			name:       "all ok",
			models:     fakeModels{},
			output:     fakeChecker{},
			wantStatus: http.StatusOK,
			wantChecks: map[string]string{"llm": "ok", "output": "ok"},
		},
		{
			name:       "model cannot be built",
			models:     fakeModels{err: stderrors.New("missing api key")},
			output:     fakeChecker{},
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"llm": "error", "output": "ok"},
		},
		{
			name:       "output dir unavailable",
			models:     fakeModels{},
			output:     fakeChecker{err: stderrors.New("read-only file system")},
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"llm": "ok", "output": "error"},
		},
		{
			name:       "nothing configured",
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"llm": "missing", "output": "missing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.models, tt.output, "dev")
			w := serve(h.Ready, "/ready")

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var resp readinessResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			for name, want := range tt.wantChecks {
				got, ok := resp.Checks[name]
				if !ok {
					t.Errorf("check %q missing", name)
					continue
				}
				if got.Status != want {
					t.Errorf("check %q status = %q, want %q", name, got.Status, want)
				}
			}
		})
	}
}

func TestHealthHandler_Live(t *testing.T) {
	w := serve(NewHealthHandler(nil, nil, "").Live, "/live")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}
