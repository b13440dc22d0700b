package favorites

import "errors"

var (
	// ErrToggleInFlight возвращается при повторном toggle того же продукта,
	// пока предыдущий ещё не подтверждён бэкендом
	ErrToggleInFlight = errors.New("favorites: toggle already in flight for this product")

	// ErrInternal возвращается, когда бэкенд отклонил мутацию
	// Локальное состояние к этому моменту уже откачено
	ErrInternal = errors.New("favorites: internal error")
)
