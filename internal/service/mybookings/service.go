package mybookings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/m04kA/RentMarket-Client/internal/domain"
	"github.com/m04kA/RentMarket-Client/internal/integrations/marketservice"
	"github.com/m04kA/RentMarket-Client/pkg/optimistic"
)

// Service клиентский кэш бронирований текущего пользователя.
// Отмена оптимистичная: статус меняется локально сразу, при отказе бэкенда
// прежний статус восстанавливается из снимка. Истина всегда на бэкенде,
// Refresh приводит кэш к ней.
type Service struct {
	client MarketClient
	log    Logger

	mu       sync.Mutex
	bookings map[int64]*domain.Booking
}

// NewService создает сервис бронирований пользователя
func NewService(client MarketClient, log Logger) *Service {
	return &Service{
		client:   client,
		log:      log,
		bookings: make(map[int64]*domain.Booking),
	}
}

// Refresh загружает бронирования пользователя с бэкенда
func (s *Service) Refresh(ctx context.Context) error {
	bookings, err := s.client.MyBookings(ctx)
	if err != nil {
		s.log.Error("Refresh: failed to fetch bookings: %v", err)
		return fmt.Errorf("%w: refresh failed: %v", ErrInternal, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = make(map[int64]*domain.Booking, len(bookings))
	for _, b := range bookings {
		copied := *b
		s.bookings[b.ID] = &copied
	}
	s.log.Info("Refresh: %d bookings loaded", len(bookings))
	return nil
}

// List возвращает снимок кэша бронирований
func (s *Service) List() []*domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		copied := *b
		out = append(out, &copied)
	}
	return out
}

// Get возвращает бронирование из кэша по ID
func (s *Service) Get(id int64) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

// Cancel отменяет бронирование
// Кэш мутируется оптимистично и откатывается при отказе бэкенда
func (s *Service) Cancel(ctx context.Context, id int64) error {
	s.mu.Lock()
	b, ok := s.bookings[id]
	if !ok {
		s.mu.Unlock()
		return ErrBookingNotFound
	}
	if !b.CanBeCancelled() {
		s.mu.Unlock()
		s.log.Warn("Cancel: booking id=%d in status %s cannot be cancelled", id, b.Status)
		return ErrCannotCancel
	}
	s.mu.Unlock()

	err := optimistic.Mutate(ctx,
		func() domain.BookingStatus { return s.status(id) },
		func() { s.setStatus(id, domain.StatusCancelled) },
		func(ctx context.Context) error { return s.client.CancelBooking(ctx, id) },
		func(snap domain.BookingStatus) { s.setStatus(id, snap) },
	)
	if err != nil {
		s.log.Error("Cancel: booking id=%d rolled back: %v", id, err)
		if errors.Is(err, marketservice.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("%w: cancel booking id=%d: %v", ErrInternal, id, err)
	}

	s.log.Info("Cancel: booking id=%d cancelled", id)
	return nil
}

func (s *Service) status(id int64) domain.BookingStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.bookings[id]; ok {
		return b.Status
	}
	return ""
}

func (s *Service) setStatus(id int64, status domain.BookingStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.bookings[id]; ok {
		b.Status = status
	}
}
