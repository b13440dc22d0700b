package mybookings

import (
	"context"

	"github.com/m04kA/RentMarket-Client/internal/domain"
)

// MarketClient интерфейс клиента маркетплейса для бронирований пользователя
type MarketClient interface {
	MyBookings(ctx context.Context) ([]*domain.Booking, error)
	CancelBooking(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
