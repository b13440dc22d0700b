package favorites

import "context"

// MarketClient интерфейс клиента маркетплейса для избранного
type MarketClient interface {
	ListFavorites(ctx context.Context) ([]int64, error)
	AddFavorite(ctx context.Context, productID int64) error
	RemoveFavorite(ctx context.Context, productID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
