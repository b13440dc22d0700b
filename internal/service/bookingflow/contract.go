package bookingflow

import (
	"context"

	"github.com/m04kA/RentMarket-Client/internal/domain"
)

// MarketClient интерфейс клиента маркетплейса
type MarketClient interface {
	CheckAvailability(ctx context.Context, productID int64, r domain.DateRange) (*domain.AvailabilityResult, error)
	CreateBooking(ctx context.Context, productID int64, r domain.DateRange) (*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
