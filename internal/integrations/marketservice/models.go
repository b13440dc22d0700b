package marketservice

import (
	"fmt"
	"time"

	"github.com/m04kA/RentMarket-Client/internal/domain"
)

// Backend error codes, маппятся на sentinel-ошибки клиента
const (
	codeDatesUnavailable = "BOOKING_DATES_UNAVAILABLE"
	codeDuplicateRating  = "RATING_DUPLICATE"
)

// errorResponse модель ошибки бэкенда
// Бэкенд отвечает либо {message}, либо {code, message, details}
type errorResponse struct {
	Code    string                 `json:"code,omitempty"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// availabilityResponse ответ проверки доступности дат
type availabilityResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}

func (r *availabilityResponse) toDomain() *domain.AvailabilityResult {
	return &domain.AvailabilityResult{Available: r.Available, Message: r.Message}
}

// createBookingRequest тело запроса на создание бронирования
type createBookingRequest struct {
	ProductID int64  `json:"productId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// bookingPayload wire-модель бронирования
type bookingPayload struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

func (p *bookingPayload) toDomain() (*domain.Booking, error) {
	start, err := domain.ParseDay(p.StartDate)
	if err != nil {
		return nil, fmt.Errorf("booking id=%d: bad startDate: %v", p.ID, err)
	}
	end, err := domain.ParseDay(p.EndDate)
	if err != nil {
		return nil, fmt.Errorf("booking id=%d: bad endDate: %v", p.ID, err)
	}
	return &domain.Booking{
		ID:        p.ID,
		ProductID: p.ProductID,
		StartDate: start,
		EndDate:   end,
		Status:    domain.BookingStatus(p.Status),
		CreatedAt: p.CreatedAt,
	}, nil
}

// favoritePayload элемент списка избранного
type favoritePayload struct {
	ProductID int64 `json:"productId"`
}

// productPayload wire-модель продукта каталога
type productPayload struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	PricePerDay float64 `json:"pricePerDay"`
	City        string  `json:"city,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	RatingCount int     `json:"ratingCount,omitempty"`
}

func (p *productPayload) toDomain() *domain.Product {
	return &domain.Product{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		PricePerDay: p.PricePerDay,
		City:        p.City,
		Rating:      p.Rating,
		RatingCount: p.RatingCount,
	}
}

// ratingRequest тело запроса на оценку продукта
type ratingRequest struct {
	Score   int    `json:"score"`
	Comment string `json:"comment,omitempty"`
}
