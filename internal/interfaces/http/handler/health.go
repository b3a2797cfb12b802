package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/gin-gonic/gin"
)

// ModelProvider 提供默认 ChatModel
type ModelProvider interface {
	Default(ctx context.Context) (model.BaseChatModel, error)
}

// HealthChecker 可做健康检查的依赖
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	models  ModelProvider
	output  HealthChecker
	version string
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(models ModelProvider, output HealthChecker, version string) *HealthHandler {
	return &HealthHandler{
		models:  models,
		output:  output,
		version: version,
	}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Health 健康检查接口
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

// Ready 就绪检查接口：模型客户端可构造且输出目录可用
// @Summary 就绪检查
// @Tags System
// @Produce json
// @Success 200 {object} readinessResponse
// @Failure 503 {object} readinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	llmCheck := runCheck(ctx, h.models != nil, "llm factory not configured", func(ctx context.Context) error {
		_, err := h.models.Default(ctx)
		return err
	})
	outputCheck := runCheck(ctx, h.output != nil, "output store not configured", func(ctx context.Context) error {
		return h.output.HealthCheck(ctx)
	})
	checks := map[string]*readinessCheck{
		"llm":    llmCheck,
		"output": outputCheck,
	}

	resp := readinessResponse{Status: "ok", Checks: checks}
	for _, check := range checks {
		if check.Status != "ok" {
			resp.Status = "not_ready"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Live 存活检查接口
// @Summary 存活检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func runCheck(ctx context.Context, configured bool, missing string, fn func(context.Context) error) *readinessCheck {
	if !configured {
		return &readinessCheck{Status: "missing", Error: missing}
	}
	start := time.Now()
	err := fn(ctx)
	check := &readinessCheck{Status: "ok", LatencyMs: time.Since(start).Milliseconds()}
	if err != nil {
		check.Status = "error"
		check.Error = err.Error()
	}
	return check
}
