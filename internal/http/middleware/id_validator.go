package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/plumbing-backend/internal/dto"
	"github.com/ignatzorin/plumbing-backend/internal/pkg/apperror"
)

// IDValidator проверяет, что параметр с указанным именем является положительным целым.
// Использование: router.GET("/tasks/:id", IDValidator("id"), handler.GetTask)
func IDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param(paramName)
		if idStr == "" {
			abortBadRequest(c, "параметр "+paramName+" обязателен")
			return
		}

		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			abortBadRequest(c, "параметр "+paramName+" должен быть положительным целым числом")
			return
		}

		c.Next()
	}
}

func abortBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  string(apperror.ErrCodeValidation),
	})
}
