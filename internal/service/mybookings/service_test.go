package mybookings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RentMarket-Client/internal/domain"
	"github.com/m04kA/RentMarket-Client/internal/integrations/marketservice"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeMarket struct {
	bookings  []*domain.Booking
	fetchErr  error
	cancelErr error

	cancelCalls []int64
}

func (m *fakeMarket) MyBookings(context.Context) ([]*domain.Booking, error) {
	return m.bookings, m.fetchErr
}

func (m *fakeMarket) CancelBooking(_ context.Context, id int64) error {
	m.cancelCalls = append(m.cancelCalls, id)
	return m.cancelErr
}

func confirmed(id int64) *domain.Booking {
	return &domain.Booking{
		ID: id, ProductID: 7,
		StartDate: "2024-06-10", EndDate: "2024-06-12",
		Status: domain.StatusConfirmed,
	}
}

func TestService_Refresh(t *testing.T) {
	market := &fakeMarket{bookings: []*domain.Booking{confirmed(1), confirmed(2)}}
	svc := NewService(market, nopLogger{})

	require.NoError(t, svc.Refresh(context.Background()))
	assert.Len(t, svc.List(), 2)

	b, err := svc.Get(1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, b.Status)

	_, err = svc.Get(99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_RefreshFailure(t *testing.T) {
	market := &fakeMarket{fetchErr: errors.New("boom")}
	svc := NewService(market, nopLogger{})

	err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_CancelOptimistic(t *testing.T) {
	market := &fakeMarket{bookings: []*domain.Booking{confirmed(1)}}
	svc := NewService(market, nopLogger{})
	require.NoError(t, svc.Refresh(context.Background()))

	require.NoError(t, svc.Cancel(context.Background(), 1))

	b, err := svc.Get(1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, b.Status)
	assert.Equal(t, []int64{1}, market.cancelCalls)
}

func TestService_CancelRollbackOnFailure(t *testing.T) {
	market := &fakeMarket{
		bookings:  []*domain.Booking{confirmed(1)},
		cancelErr: errors.New("backend down"),
	}
	svc := NewService(market, nopLogger{})
	require.NoError(t, svc.Refresh(context.Background()))

	err := svc.Cancel(context.Background(), 1)
	require.ErrorIs(t, err, ErrInternal)

	// Статус откачен к снимку
	b, getErr := svc.Get(1)
	require.NoError(t, getErr)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
}

func TestService_CancelNotFoundOnBackend(t *testing.T) {
	market := &fakeMarket{
		bookings:  []*domain.Booking{confirmed(1)},
		cancelErr: marketservice.ErrNotFound,
	}
	svc := NewService(market, nopLogger{})
	require.NoError(t, svc.Refresh(context.Background()))

	err := svc.Cancel(context.Background(), 1)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_CancelGuards(t *testing.T) {
	cancelled := confirmed(2)
	cancelled.Status = domain.StatusCancelled

	market := &fakeMarket{bookings: []*domain.Booking{cancelled}}
	svc := NewService(market, nopLogger{})
	require.NoError(t, svc.Refresh(context.Background()))

	assert.ErrorIs(t, svc.Cancel(context.Background(), 99), ErrBookingNotFound)
	assert.ErrorIs(t, svc.Cancel(context.Background(), 2), ErrCannotCancel)
	assert.Empty(t, market.cancelCalls)
}
