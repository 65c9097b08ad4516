package common

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/plumbing-backend/internal/pkg/apperror"
)

// ParseIDParam читает положительный целый ID из параметра пути.
func ParseIDParam(c *gin.Context, paramName string) (int64, error) {
	param := c.Param(paramName)
	if param == "" {
		return 0, apperror.Validation("параметр %s отсутствует", paramName)
	}

	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation("параметр %s должен быть положительным целым числом", paramName)
	}

	return id, nil
}

// BindJSON разбирает тело запроса; ошибка уже готова для ErrorHandler.
func BindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректное тело запроса")
	}
	return nil
}

// Fail передаёт ошибку в ErrorHandler и прерывает цепочку.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
