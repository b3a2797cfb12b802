package handler

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"

	"biography-api/internal/application/biography"
	"biography-api/internal/interfaces/http/dto"
	"biography-api/internal/interfaces/http/view"
	wfmodel "biography-api/internal/workflow/model"
	"biography-api/pkg/errors"
)

type fakeGenerator struct {
	res   *biography.Result
	err   error
	calls []*biography.Request
}

func (g *fakeGenerator) Generate(ctx context.Context, req *biography.Request) (*biography.Result, error) {
	g.calls = append(g.calls, req)
	return g.res, g.err
}

var fiveChapters = []string{"幼少期の思い出: 一", "学生時代: 二", "社会人としての歩み: 三", "家族との時間: 四", "新たな挑戦: 五"}

func newBiographyEngine(gen BiographyGenerator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(view.Templates())
	r.Use(func(c *gin.Context) {
		c.Set("request_id", "req-test")
		c.Next()
	})
	r.POST("/submit", NewBiographyHandler(gen).Submit)
	return r
}

func TestBiographyHandler_Submit_Form(t *testing.T) {
	gen := &fakeGenerator{res: &biography.Result{Chapters: fiveChapters}}
	r := newBiographyEngine(gen)

	form := url.Values{}
	form.Set("birth", "1980年 東京")
	form.Set("junior_high", "吹奏楽部")
	form.Set("current", "")

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp dto.SubmitBiographyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(fiveChapters, resp.Chapters); diff != "" {
		t.Errorf("chapters mismatch (-want +got):\n%s", diff)
	}

	if len(gen.calls) != 1 {
		t.Fatalf("Generate calls = %d, want 1", len(gen.calls))
	}
	want := &biography.Request{
		ID:     "req-test",
		Events: wfmodel.LifeEvents{Birth: "1980年 東京", JuniorHigh: "吹奏楽部"},
	}
	if diff := cmp.Diff(want, gen.calls[0]); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestBiographyHandler_Submit_JSONBindsLikeForm(t *testing.T) {
	gen := &fakeGenerator{res: &biography.Result{Chapters: fiveChapters}}
	r := newBiographyEngine(gen)

	body := `{"birth":"1980年 東京","high_school":"野球部","children":"二人"}`
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	want := wfmodel.LifeEvents{Birth: "1980年 東京", HighSchool: "野球部", Children: "二人"}
	if diff := cmp.Diff(want, gen.calls[0].Events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestBiographyHandler_Submit_EmptyFormIsAccepted(t *testing.T) {
	gen := &fakeGenerator{res: &biography.Result{Chapters: fiveChapters}}
	r := newBiographyEngine(gen)

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if diff := cmp.Diff(wfmodel.LifeEvents{}, gen.calls[0].Events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestBiographyHandler_Submit_InvalidJSON(t *testing.T) {
	gen := &fakeGenerator{}
	r := newBiographyEngine(gen)

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(`{"birth":`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if len(gen.calls) != 0 {
		t.Errorf("generator should not be called on bind error")
	}
}

func TestBiographyHandler_Submit_ErrorRendering(t *testing.T) {
	transportErr := errors.Wrap(stderrors.New("dial tcp: connection refused"), errors.CodeLLMCallFailed, "llm call failed")
	mismatchErr := errors.Wrap(&biography.ChapterCountError{Got: 3, Want: 5}, errors.CodeChapterCountMismatch, "unexpected chapter structure in llm output")

	tests := []struct {
		name       string
		err        error
		accept     string
		wantStatus int
		wantType   string
		wantBody   []string
	}{
		{
			name:       "transport error as html",
			err:        transportErr,
			wantStatus: http.StatusBadGateway,
			wantType:   "text/html",
			wantBody:   []string{"connection refused", string(errors.CodeLLMCallFailed), "req-test"},
		},
		{
			name:       "chapter mismatch as html",
			err:        mismatchErr,
			accept:     "text/html",
			wantStatus: http.StatusBadGateway,
			wantType:   "text/html",
			wantBody:   []string{string(errors.CodeChapterCountMismatch)},
		},
		{
			name:       "transport error as json",
			err:        transportErr,
			accept:     "application/json",
			wantStatus: http.StatusBadGateway,
			wantType:   "application/json",
			wantBody:   []string{`"error_code":"4005"`, "connection refused", `"request_id":"req-test"`},
		},
		{
			name:       "plain error falls back to internal",
			err:        stderrors.New("boom"),
			accept:     "application/json",
			wantStatus: http.StatusInternalServerError,
			wantType:   "application/json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newBiographyEngine(&fakeGenerator{err: tt.err})

			req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("birth=x"))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.wantType) {
				t.Errorf("Content-Type = %q, want prefix %q", ct, tt.wantType)
			}
			for _, s := range tt.wantBody {
				if !strings.Contains(w.Body.String(), s) {
					t.Errorf("body missing %q:\n%s", s, w.Body.String())
				}
			}
		})
	}
}
