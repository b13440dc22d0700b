package marketservice

import "errors"

var (
	// ErrUnauthorized возвращается, когда сессия отсутствует или токен отклонён бэкендом
	ErrUnauthorized = errors.New("marketservice client: unauthorized")

	// ErrNotFound возвращается, когда запрошенная сущность не найдена
	ErrNotFound = errors.New("marketservice client: not found")

	// ErrDatesUnavailable возвращается, когда выбранные даты уже заняты
	// (код бэкенда BOOKING_DATES_UNAVAILABLE)
	ErrDatesUnavailable = errors.New("marketservice client: booking dates unavailable")

	// ErrDuplicateRating возвращается при повторной оценке продукта
	// (код бэкенда RATING_DUPLICATE)
	ErrDuplicateRating = errors.New("marketservice client: rating already submitted")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("marketservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе бэкенда
	ErrInvalidResponse = errors.New("marketservice client: invalid response")
)
