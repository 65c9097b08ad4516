package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/plumbing-backend/internal/dto"
	"github.com/ignatzorin/plumbing-backend/internal/logger"
	"github.com/ignatzorin/plumbing-backend/internal/pkg/apperror"
)

const internalErrorMessage = "внутренняя ошибка сервера"

// ErrorHandler обрабатывает ошибки централизованно.
// AppError отдаётся клиенту с его статусом и сообщением, всё остальное маскируется как 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Проверяем, не был ли уже отправлен ответ
		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		statusCode := http.StatusInternalServerError
		body := dto.ErrorResponse{Error: internalErrorMessage, Code: string(apperror.ErrCodeInternal)}
		if appErr, ok := apperror.As(err); ok {
			statusCode = appErr.HTTPStatus
			body = dto.ErrorResponse{Error: appErr.Message, Code: string(appErr.Code)}
		}

		entry := logger.Entry().WithFields(logrus.Fields{
			"error":      err.Error(),
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"status":     statusCode,
			"request_id": c.GetString(ContextRequestIDKey),
		})
		if statusCode >= http.StatusInternalServerError {
			entry.Error("Request error")
		} else {
			entry.Debug("Request rejected")
		}

		c.JSON(statusCode, body)
	}
}
