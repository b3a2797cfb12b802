// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"biography-api/internal/application/biography"
	"biography-api/internal/interfaces/http/dto"
	"biography-api/internal/interfaces/http/view"
	"biography-api/pkg/errors"
	"biography-api/pkg/logger"
)

// BiographyGenerator 传记生成能力
type BiographyGenerator interface {
	Generate(ctx context.Context, req *biography.Request) (*biography.Result, error)
}

// BiographyHandler 传记处理器
type BiographyHandler struct {
	generator BiographyGenerator
}

// NewBiographyHandler 创建传记处理器
func NewBiographyHandler(generator BiographyGenerator) *BiographyHandler {
	return &BiographyHandler{generator: generator}
}

// Submit 生成传记
// @Summary 生成传记
// @Description 根据人生各阶段经历同步生成五章传记
// @Tags Biography
// @Accept x-www-form-urlencoded,json
// @Produce json,html
// @Success 200 {object} dto.SubmitBiographyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /submit [post]
func (h *BiographyHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SubmitBiographyRequest
	if err := c.ShouldBind(&req); err != nil {
		renderError(c, errors.Wrap(err, errors.CodeInvalidParam, "invalid request body"))
		return
	}

	res, err := h.generator.Generate(ctx, &biography.Request{
		ID:     c.GetString("request_id"),
		Events: req.ToLifeEvents(),
	})
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubmitBiographyResponse{Chapters: res.Chapters})
}

// renderError 渲染错误：默认 HTML 错误页，客户端偏好 JSON 时返回 JSON
func renderError(c *gin.Context, err error) {
	appErr := errors.AsAppError(err)
	logger.Warn(c.Request.Context(), "biography request failed",
		"code", appErr.Code,
		"status", appErr.HTTPStatus,
		"error", err.Error(),
	)

	switch c.NegotiateFormat(binding.MIMEHTML, binding.MIMEJSON) {
	case binding.MIMEJSON:
		dto.ErrorWithDetail(c, appErr.HTTPStatus, appErr.Description(), &dto.ErrorDetail{
			ErrorCode: string(appErr.Code),
			Details:   appErr.Message,
		})
	default:
		c.HTML(appErr.HTTPStatus, view.ErrorTemplate, gin.H{
			"error":      appErr.Description(),
			"code":       string(appErr.Code),
			"request_id": c.GetString("request_id"),
		})
	}
}
