package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// Booking represents a product booking as returned by the marketplace backend.
// The client only ever holds a transient copy for display; the lifecycle is
// backend-owned.
type Booking struct {
	ID        int64
	ProductID int64
	StartDate Day
	EndDate   Day
	Status    BookingStatus

	CreatedAt time.Time
}

// IsActive returns true if the booking still occupies its dates
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Range возвращает диапазон дат бронирования
func (b *Booking) Range() DateRange {
	return DateRange{Start: b.StartDate, End: b.EndDate}
}

// BlockedDays разворачивает активные бронирования в множество занятых дней
// Используется продуктовой страницей как вход календаря
func BlockedDays(bookings []*Booking) map[Day]struct{} {
	blocked := make(map[Day]struct{})
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		for _, d := range b.Range().Days() {
			blocked[d] = struct{}{}
		}
	}
	return blocked
}

// AvailabilityResult represents the outcome of an availability check.
// Ephemeral: it gates booking creation for the range it was requested for
// and is discarded as soon as the range changes.
type AvailabilityResult struct {
	Available bool
	Message   string
}
