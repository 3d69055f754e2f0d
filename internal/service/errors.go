package service

import (
	"errors"
)

var (
	// ErrUpstreamUnavailable — транспортная или HTTP-ошибка апстрима.
	// Неявного фолбэка на устаревшие данные нет: вызывающий получает
	// явный отказ.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	// ErrNoData — апстрим ответил успешно, но данных нет.
	// Отличается от недоступности фида.
	ErrNoData = errors.New("no data available")

	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
