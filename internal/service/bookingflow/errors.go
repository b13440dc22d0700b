package bookingflow

import "errors"

var (
	// ErrIncompleteRange возвращается при попытке проверки без полного диапазона дат
	// Валидация локальная, сетевой вызов не выполняется
	ErrIncompleteRange = errors.New("bookingflow: date range is not complete")

	// ErrBusy возвращается, когда проверка или бронирование уже выполняются
	// Дубли запросов не ставятся в очередь и не перегоняют друг друга
	ErrBusy = errors.New("bookingflow: operation already in flight")

	// ErrNotChecked возвращается при попытке бронирования без свежей проверки
	// доступности для текущего диапазона
	ErrNotChecked = errors.New("bookingflow: availability not confirmed for current range")

	// ErrUnavailable возвращается, когда последняя проверка показала занятые даты
	ErrUnavailable = errors.New("bookingflow: dates are not available")

	// ErrInternal возвращается при сетевых и серверных ошибках
	ErrInternal = errors.New("bookingflow: internal error")
)
