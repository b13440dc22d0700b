package marketservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RentMarket-Client/internal/backendtest"
	"github.com/m04kA/RentMarket-Client/internal/domain"
	"github.com/m04kA/RentMarket-Client/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type staticToken string

func (t staticToken) Token() string { return string(t) }

func newTestClient(t *testing.T, token string) (*Client, *backendtest.Server) {
	t.Helper()
	backend := backendtest.New()
	t.Cleanup(backend.Close)

	client := NewClient(backend.URL, 5*time.Second, staticToken(token), nil, nopLogger{})
	return client, backend
}

func TestClient_CheckAvailability(t *testing.T) {
	client, backend := newTestClient(t, "test-token")
	backend.AddBooking(backendtest.Booking{
		ProductID: 7, StartDate: "2024-06-10", EndDate: "2024-06-12", Status: "CONFIRMED",
	})

	free, err := client.CheckAvailability(context.Background(), 7,
		domain.DateRange{Start: "2024-06-20", End: "2024-06-22"})
	require.NoError(t, err)
	assert.True(t, free.Available)
	assert.Empty(t, free.Message)

	taken, err := client.CheckAvailability(context.Background(), 7,
		domain.DateRange{Start: "2024-06-11", End: "2024-06-15"})
	require.NoError(t, err)
	assert.False(t, taken.Available)
	assert.NotEmpty(t, taken.Message)
}

func TestClient_CreateBooking(t *testing.T) {
	client, _ := newTestClient(t, "test-token")

	booking, err := client.CreateBooking(context.Background(), 7,
		domain.DateRange{Start: "2024-06-03", End: "2024-06-05"})
	require.NoError(t, err)

	assert.NotZero(t, booking.ID)
	assert.Equal(t, int64(7), booking.ProductID)
	assert.Equal(t, domain.Day("2024-06-03"), booking.StartDate)
	assert.Equal(t, domain.Day("2024-06-05"), booking.EndDate)
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
}

func TestClient_CreateBooking_DatesUnavailable(t *testing.T) {
	client, backend := newTestClient(t, "test-token")
	backend.AddBooking(backendtest.Booking{
		ProductID: 7, StartDate: "2024-06-03", EndDate: "2024-06-05", Status: "CONFIRMED",
	})

	_, err := client.CreateBooking(context.Background(), 7,
		domain.DateRange{Start: "2024-06-04", End: "2024-06-06"})

	// Код BOOKING_DATES_UNAVAILABLE маппится на типизированную ошибку
	assert.ErrorIs(t, err, ErrDatesUnavailable)
}

func TestClient_CreateBooking_NoSession(t *testing.T) {
	client, backend := newTestClient(t, "")

	_, err := client.CreateBooking(context.Background(), 7,
		domain.DateRange{Start: "2024-06-03", End: "2024-06-05"})

	// Без токена защищённая операция не доходит до сети
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, backend.Bookings())
}

func TestClient_CreateBooking_BadToken(t *testing.T) {
	client, _ := newTestClient(t, "wrong-token")

	_, err := client.CreateBooking(context.Background(), 7,
		domain.DateRange{Start: "2024-06-03", End: "2024-06-05"})

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_MyBookingsAndCancel(t *testing.T) {
	client, backend := newTestClient(t, "test-token")
	backend.AddBooking(backendtest.Booking{
		ID: 11, ProductID: 7, StartDate: "2024-06-10", EndDate: "2024-06-12", Status: "PENDING",
	})

	bookings, err := client.MyBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, int64(11), bookings[0].ID)
	assert.Equal(t, domain.StatusPending, bookings[0].Status)

	require.NoError(t, client.CancelBooking(context.Background(), 11))

	bookings, err = client.MyBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, domain.StatusCancelled, bookings[0].Status)
}

func TestClient_CancelBooking_NotFound(t *testing.T) {
	client, _ := newTestClient(t, "test-token")

	err := client.CancelBooking(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Favorites(t *testing.T) {
	client, _ := newTestClient(t, "test-token")
	ctx := context.Background()

	ids, err := client.ListFavorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, client.AddFavorite(ctx, 42))
	require.NoError(t, client.AddFavorite(ctx, 17))

	ids, err = client.ListFavorites(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{42, 17}, ids)

	require.NoError(t, client.RemoveFavorite(ctx, 42))

	ids, err = client.ListFavorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{17}, ids)
}

func TestClient_SubmitRating_Duplicate(t *testing.T) {
	client, _ := newTestClient(t, "test-token")
	ctx := context.Background()

	require.NoError(t, client.SubmitRating(ctx, 7, 5, "great"))

	err := client.SubmitRating(ctx, 7, 4, "still great")
	assert.ErrorIs(t, err, ErrDuplicateRating)
}

func TestClient_Products(t *testing.T) {
	client, backend := newTestClient(t, "")
	backend.AddProduct(backendtest.Product{ID: 1, Title: "Canoe", PricePerDay: 25, City: "Kazan"})
	backend.AddProduct(backendtest.Product{ID: 2, Title: "Mountain bike", PricePerDay: 15, City: "Kazan"})
	ctx := context.Background()

	// Каталог публичный, токен не нужен
	all, err := client.ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := client.ListProducts(ctx, domain.ProductFilter{Query: ptr.Ptr("bike")})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Mountain bike", filtered[0].Title)

	p, err := client.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Canoe", p.Title)

	_, err = client.GetProduct(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_NetworkError(t *testing.T) {
	backend := backendtest.New()
	url := backend.URL
	backend.Close()

	client := NewClient(url, time.Second, staticToken("test-token"), nil, nopLogger{})

	_, err := client.MyBookings(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInternal))
}
