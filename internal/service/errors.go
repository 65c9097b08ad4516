package service

import (
	"errors"

	"github.com/ignatzorin/plumbing-backend/internal/pkg/apperror"
	"github.com/ignatzorin/plumbing-backend/internal/repository"
)

// translateRepoError переводит ошибки репозиториев в ошибки приложения.
func translateRepoError(err error, message string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrTaskNotFound):
		return apperror.ErrTaskNotFound
	case errors.Is(err, repository.ErrProfessionalNotFound):
		return apperror.ErrProfessionalNotFound
	default:
		return apperror.Database(err, message)
	}
}
