package common

import "errors"

// Общие ошибки для всех репозиториев
var (
	ErrNotFound     = errors.New("entity not found")
	ErrInvalidInput = errors.New("invalid input")
)
