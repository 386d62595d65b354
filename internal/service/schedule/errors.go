package schedule

import "errors"

var (
	// ErrConfigNotFound конфигурация расписания не найдена
	ErrConfigNotFound = errors.New("schedule config not found")
	// ErrInvalidConfig конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("invalid schedule config")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("internal error")
)
