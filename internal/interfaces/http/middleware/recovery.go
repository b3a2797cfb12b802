package middleware

import (
	"fmt"
	"runtime/debug"

	"biography-api/internal/interfaces/http/dto"
	"biography-api/pkg/errors"
	"biography-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Recovery Panic 恢复中间件：单个请求异常不影响进程
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error(c.Request.Context(), "panic recovered",
					fmt.Errorf("%v", rec),
					"stack", string(debug.Stack()),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)

				c.Abort()
				appErr := errors.New(errors.CodeInternalError, "internal server error")
				dto.ErrorWithDetail(c, appErr.HTTPStatus, appErr.Message, &dto.ErrorDetail{
					ErrorCode: string(appErr.Code),
				})
			}
		}()

		c.Next()
	}
}
