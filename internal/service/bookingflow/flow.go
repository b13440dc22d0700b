package bookingflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/m04kA/RentMarket-Client/internal/domain"
	"github.com/m04kA/RentMarket-Client/internal/integrations/marketservice"
)

// Flow workflow бронирования одного продукта.
//
// Машина состояний: Idle -> Checking -> Checked(available) -> Booking -> Booked.
// Инвариант: бронирование выполняется только после того, как последняя проверка
// доступности для ТЕКУЩЕГО диапазона вернула available=true. Любая смена
// диапазона сбрасывает прежний вердикт, поэтому устаревшее подтверждение
// использовать нельзя.
type Flow struct {
	client MarketClient
	log    Logger

	mu        sync.Mutex
	productID int64
	state     State
	rng       domain.DateRange
	verdict   *domain.AvailabilityResult
	booking   *domain.Booking
	lastErr   string
}

// NewFlow создает workflow бронирования для продукта
func NewFlow(productID int64, client MarketClient, log Logger) *Flow {
	return &Flow{
		client:    client,
		log:       log,
		productID: productID,
		state:     StateIdle,
	}
}

// Snapshot возвращает наблюдаемое состояние workflow
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot{
		State:   f.state,
		Range:   f.rng,
		Verdict: f.verdict,
		Booking: f.booking,
		LastErr: f.lastErr,
	}
}

// SetRange устанавливает диапазон дат
// Любая мутация диапазона инвалидирует прежний вердикт проверки: возврат в Idle
func (f *Flow) SetRange(r domain.DateRange) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r == f.rng {
		return
	}
	f.rng = r
	f.verdict = nil
	f.lastErr = ""
	// In-flight операции сами обнаружат смену диапазона при завершении
	if f.state == StateChecked || f.state == StateError || f.state == StateBooked {
		f.state = StateIdle
	}
}

// CheckAvailability проверяет доступность текущего диапазона на бэкенде
// Неполный диапазон отклоняется локально без сетевого вызова
func (f *Flow) CheckAvailability(ctx context.Context) (*domain.AvailabilityResult, error) {
	f.mu.Lock()
	if f.state == StateChecking || f.state == StateBooking {
		f.mu.Unlock()
		return nil, ErrBusy
	}
	if !f.rng.IsComplete() {
		f.mu.Unlock()
		return nil, ErrIncompleteRange
	}
	requested := f.rng
	f.state = StateChecking
	f.mu.Unlock()

	f.log.Info("CheckAvailability: product=%d, range=%s..%s", f.productID, requested.Start, requested.End)
	verdict, err := f.client.CheckAvailability(ctx, f.productID, requested)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.log.Error("CheckAvailability: product=%d: %v", f.productID, err)
		f.state = StateError
		f.lastErr = "не удалось проверить доступность дат"
		return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}

	if f.rng != requested {
		// Диапазон сменили, пока запрос был в полёте - вердикт устарел
		f.log.Warn("CheckAvailability: product=%d: range changed in flight, verdict discarded", f.productID)
		f.state = StateIdle
		return verdict, nil
	}

	f.state = StateChecked
	f.verdict = verdict
	f.lastErr = ""
	if verdict.Available {
		f.log.Info("CheckAvailability: product=%d: range is available", f.productID)
	} else {
		f.log.Info("CheckAvailability: product=%d: range is not available: %s", f.productID, verdict.Message)
	}
	return verdict, nil
}

// Book создает бронирование для подтверждённого диапазона
// Без свежего положительного вердикта операция отклоняется
func (f *Flow) Book(ctx context.Context) (*domain.Booking, error) {
	f.mu.Lock()
	if f.state == StateChecking || f.state == StateBooking {
		f.mu.Unlock()
		return nil, ErrBusy
	}
	if f.state != StateChecked || f.verdict == nil {
		f.mu.Unlock()
		return nil, ErrNotChecked
	}
	if !f.verdict.Available {
		f.mu.Unlock()
		return nil, ErrUnavailable
	}
	requested := f.rng
	f.state = StateBooking
	f.mu.Unlock()

	f.log.Info("Book: product=%d, range=%s..%s", f.productID, requested.Start, requested.End)
	booking, err := f.client.CreateBooking(ctx, f.productID, requested)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.state = StateError
		// Гонка с другим покупателем: даты заняли между проверкой и бронированием
		if errors.Is(err, marketservice.ErrDatesUnavailable) {
			f.log.Warn("Book: product=%d: dates taken between check and book", f.productID)
			f.verdict = nil
			f.lastErr = "выбранные даты уже заняты"
			return nil, ErrUnavailable
		}
		f.log.Error("Book: product=%d: %v", f.productID, err)
		f.lastErr = "не удалось создать бронирование"
		return nil, fmt.Errorf("%w: booking failed: %v", ErrInternal, err)
	}

	f.state = StateBooked
	f.booking = booking
	f.lastErr = ""
	f.log.Info("Book: product=%d: booking id=%d created", f.productID, booking.ID)
	return booking, nil
}
