package marketservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/RentMarket-Client/internal/domain"
	"github.com/m04kA/RentMarket-Client/pkg/httpmetrics"
)

// Client клиент REST API маркетплейса
// Добавляет bearer-токен сессии и X-Request-ID к каждому запросу,
// маппит error envelope бэкенда {code, message, details} на sentinel-ошибки
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        Logger
}

// NewClient создает новый экземпляр клиента маркетплейса
// transport может быть nil (http.DefaultTransport) или обёрткой httpmetrics
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, transport http.RoundTripper, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		tokens: tokens,
		log:    log,
	}
}

// ListProducts возвращает страницу каталога с учётом фильтра
func (c *Client) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	q := url.Values{}
	if filter.Query != nil {
		q.Set("query", *filter.Query)
	}
	if filter.City != nil {
		q.Set("city", *filter.City)
	}
	if filter.MinPrice != nil {
		q.Set("minPrice", strconv.FormatFloat(*filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*filter.MaxPrice, 'f', -1, 64))
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(filter.PageSize))
	}

	var payload []*productPayload
	if err := c.do(ctx, "list_products", http.MethodGet, "/api/products", q, nil, false, http.StatusOK, &payload); err != nil {
		return nil, err
	}

	products := make([]*domain.Product, 0, len(payload))
	for _, p := range payload {
		products = append(products, p.toDomain())
	}
	return products, nil
}

// GetProduct возвращает продукт по ID
func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var payload productPayload
	path := fmt.Sprintf("/api/products/%d", id)
	if err := c.do(ctx, "get_product", http.MethodGet, path, nil, nil, false, http.StatusOK, &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}

// CheckAvailability проверяет доступность диапазона дат для продукта
// Занятые даты - не ошибка: бэкенд отвечает 200 с available=false
func (c *Client) CheckAvailability(ctx context.Context, productID int64, r domain.DateRange) (*domain.AvailabilityResult, error) {
	c.log.Info("CheckAvailability: product=%d, range=%s..%s", productID, r.Start, r.End)

	q := url.Values{}
	q.Set("productId", strconv.FormatInt(productID, 10))
	q.Set("startDate", r.Start.String())
	q.Set("endDate", r.End.String())

	var payload availabilityResponse
	if err := c.do(ctx, "check_availability", http.MethodGet, "/api/bookings/availability", q, nil, false, http.StatusOK, &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}

// CreateBooking создает бронирование дат продукта
// Требует авторизованную сессию
func (c *Client) CreateBooking(ctx context.Context, productID int64, r domain.DateRange) (*domain.Booking, error) {
	c.log.Info("CreateBooking: product=%d, range=%s..%s", productID, r.Start, r.End)

	body := createBookingRequest{
		ProductID: productID,
		StartDate: r.Start.String(),
		EndDate:   r.End.String(),
	}

	var payload bookingPayload
	if err := c.do(ctx, "create_booking", http.MethodPost, "/api/bookings", nil, &body, true, http.StatusCreated, &payload); err != nil {
		return nil, err
	}

	booking, err := payload.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	c.log.Info("CreateBooking: created booking id=%d status=%s", booking.ID, booking.Status)
	return booking, nil
}

// MyBookings возвращает бронирования текущего пользователя
func (c *Client) MyBookings(ctx context.Context) ([]*domain.Booking, error) {
	var payload []*bookingPayload
	if err := c.do(ctx, "my_bookings", http.MethodGet, "/api/bookings/me", nil, nil, true, http.StatusOK, &payload); err != nil {
		return nil, err
	}

	bookings := make([]*domain.Booking, 0, len(payload))
	for _, p := range payload {
		b, err := p.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// CancelBooking отменяет бронирование по ID
func (c *Client) CancelBooking(ctx context.Context, id int64) error {
	c.log.Info("CancelBooking: booking=%d", id)
	path := fmt.Sprintf("/api/bookings/%d", id)
	return c.do(ctx, "cancel_booking", http.MethodDelete, path, nil, nil, true, http.StatusNoContent, nil)
}

// ListFavorites возвращает ID избранных продуктов текущего пользователя
func (c *Client) ListFavorites(ctx context.Context) ([]int64, error) {
	var payload []*favoritePayload
	if err := c.do(ctx, "list_favorites", http.MethodGet, "/api/favorites", nil, nil, true, http.StatusOK, &payload); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(payload))
	for _, f := range payload {
		ids = append(ids, f.ProductID)
	}
	return ids, nil
}

// AddFavorite добавляет продукт в избранное
func (c *Client) AddFavorite(ctx context.Context, productID int64) error {
	path := fmt.Sprintf("/api/favorites/%d", productID)
	return c.do(ctx, "add_favorite", http.MethodPost, path, nil, nil, true, http.StatusCreated, nil)
}

// RemoveFavorite удаляет продукт из избранного
func (c *Client) RemoveFavorite(ctx context.Context, productID int64) error {
	path := fmt.Sprintf("/api/favorites/%d", productID)
	return c.do(ctx, "remove_favorite", http.MethodDelete, path, nil, nil, true, http.StatusNoContent, nil)
}

// SubmitRating отправляет оценку продукта
// Повторная оценка маппится на ErrDuplicateRating (код RATING_DUPLICATE)
func (c *Client) SubmitRating(ctx context.Context, productID int64, score int, comment string) error {
	c.log.Info("SubmitRating: product=%d, score=%d", productID, score)
	path := fmt.Sprintf("/api/products/%d/ratings", productID)
	body := ratingRequest{Score: score, Comment: comment}
	return c.do(ctx, "submit_rating", http.MethodPost, path, nil, &body, true, http.StatusCreated, nil)
}

// do выполняет запрос к бэкенду и декодирует ответ в out (если out != nil)
// needAuth=true требует наличия токена ещё до сетевого вызова
func (c *Client) do(
	ctx context.Context,
	op string,
	method string,
	path string,
	query url.Values,
	body interface{},
	needAuth bool,
	expectStatus int,
	out interface{},
) error {
	token := c.tokens.Token()
	if needAuth && token == "" {
		c.log.Warn("%s: no active session", op)
		return ErrUnauthorized
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request body: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(data)
	}

	ctx = httpmetrics.WithOperation(ctx, op)
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("%s: request failed: %v", op, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != expectStatus {
		return c.mapError(op, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
		}
	}
	return nil
}

// mapError конвертирует не-2xx ответ в sentinel-ошибку
// Известные коды бэкенда получают типизированную ошибку, остальное - generic
func (c *Client) mapError(op string, resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	var envelope errorResponse
	if err := json.Unmarshal(data, &envelope); err == nil {
		switch envelope.Code {
		case codeDatesUnavailable:
			return fmt.Errorf("%w: %s", ErrDatesUnavailable, envelope.Message)
		case codeDuplicateRating:
			return fmt.Errorf("%w: %s", ErrDuplicateRating, envelope.Message)
		}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		c.log.Warn("%s: unauthorized (status %d)", op, resp.StatusCode)
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		c.log.Error("%s: unexpected status %d: %s", op, resp.StatusCode, string(data))
		if envelope.Message != "" {
			return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, envelope.Message)
		}
		return fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, resp.StatusCode)
	}
}
