package bookingflow

import "github.com/m04kA/RentMarket-Client/internal/domain"

// State состояние попытки бронирования
type State string

const (
	// StateIdle выбор дат, сетевых вызовов не было
	StateIdle State = "idle"
	// StateChecking проверка доступности в полёте
	StateChecking State = "checking"
	// StateChecked проверка завершена, вердикт в Verdict
	StateChecked State = "checked"
	// StateBooking создание бронирования в полёте
	StateBooking State = "booking"
	// StateBooked бронирование создано
	StateBooked State = "booked"
	// StateError последняя операция завершилась ошибкой, допустим повтор проверки
	StateError State = "error"
)

// Snapshot наблюдаемое состояние workflow для отрисовки
type Snapshot struct {
	State   State
	Range   domain.DateRange
	Verdict *domain.AvailabilityResult // nil, пока проверка не выполнена
	Booking *domain.Booking            // nil до успешного бронирования
	LastErr string                     // пользовательское сообщение последней ошибки
}

// CanBook сообщает, разрешена ли кнопка бронирования
func (s Snapshot) CanBook() bool {
	return s.State == StateChecked && s.Verdict != nil && s.Verdict.Available
}
