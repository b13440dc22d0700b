package mybookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирования нет в локальном кэше
	ErrBookingNotFound = errors.New("mybookings: booking not found")

	// ErrCannotCancel возвращается для бронирований в неотменяемом статусе
	ErrCannotCancel = errors.New("mybookings: booking cannot be cancelled")

	// ErrInternal возвращается при отказе бэкенда
	// Локальный кэш к этому моменту откачен
	ErrInternal = errors.New("mybookings: internal error")
)
