// Package backendtest поднимает in-memory фейк REST API маркетплейса
// для тестов клиента: каталог, доступность, бронирования, избранное, оценки.
package backendtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"
)

// Коды ошибок, которые отдаёт реальный бэкенд
const (
	CodeDatesUnavailable = "BOOKING_DATES_UNAVAILABLE"
	CodeDuplicateRating  = "RATING_DUPLICATE"
)

// Product запись каталога фейка
type Product struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	PricePerDay float64 `json:"pricePerDay"`
	City        string  `json:"city,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	RatingCount int     `json:"ratingCount,omitempty"`
}

// Booking запись бронирования фейка
type Booking struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"productId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Status    string `json:"status"`
}

type errorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// Server фейковый бэкенд маркетплейса поверх httptest.Server
// Поля-переключатели позволяют форсировать отказы в конкретных тестах
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	products  map[int64]Product
	bookings  map[int64]*Booking
	favorites map[int64]struct{}
	ratings   map[int64]struct{}
	nextID    int64

	// Token ожидаемый bearer-токен защищённых маршрутов
	Token string

	// Переключатели отказов
	FailFavorites bool // add/remove избранного отвечают 500
	FailBookings  bool // создание/отмена бронирования отвечают 500
}

// New создает и запускает фейковый бэкенд
func New() *Server {
	s := &Server{
		products:  make(map[int64]Product),
		bookings:  make(map[int64]*Booking),
		favorites: make(map[int64]struct{}),
		ratings:   make(map[int64]struct{}),
		nextID:    1,
		Token:     "test-token",
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/products", s.listProducts).Methods(http.MethodGet)
	r.HandleFunc("/api/products/{id}", s.getProduct).Methods(http.MethodGet)
	r.HandleFunc("/api/products/{id}/ratings", s.auth(s.submitRating)).Methods(http.MethodPost)
	r.HandleFunc("/api/bookings/availability", s.checkAvailability).Methods(http.MethodGet)
	r.HandleFunc("/api/bookings", s.auth(s.createBooking)).Methods(http.MethodPost)
	r.HandleFunc("/api/bookings/me", s.auth(s.myBookings)).Methods(http.MethodGet)
	r.HandleFunc("/api/bookings/{id}", s.auth(s.cancelBooking)).Methods(http.MethodDelete)
	r.HandleFunc("/api/favorites", s.auth(s.listFavorites)).Methods(http.MethodGet)
	r.HandleFunc("/api/favorites/{id}", s.auth(s.addFavorite)).Methods(http.MethodPost)
	r.HandleFunc("/api/favorites/{id}", s.auth(s.removeFavorite)).Methods(http.MethodDelete)

	s.Server = httptest.NewServer(r)
	return s
}

// AddProduct добавляет продукт в каталог фейка
func (s *Server) AddProduct(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// AddBooking сажает бронирование в фейк напрямую (минуя HTTP)
func (s *Server) AddBooking(b Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == 0 {
		b.ID = s.nextID
	}
	if b.ID >= s.nextID {
		s.nextID = b.ID + 1
	}
	s.bookings[b.ID] = &b
}

// Bookings возвращает снимок всех бронирований фейка
func (s *Server) Bookings() []Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, *b)
	}
	return out
}

// Favorites возвращает снимок множества избранного
func (s *Server) Favorites() map[int64]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int64]struct{}, len(s.favorites))
	for id := range s.favorites {
		out[id] = struct{}{}
	}
	return out
}

// auth проверяет bearer-токен защищённого маршрута
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header != "Bearer "+s.Token {
			respondError(w, http.StatusUnauthorized, "", "missing or invalid token")
			return
		}
		next(w, r)
	}
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := strings.ToLower(r.URL.Query().Get("query"))
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if query != "" && !strings.Contains(strings.ToLower(p.Title), query) {
			continue
		}
		out = append(out, p)
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	s.mu.Lock()
	p, ok := s.products[id]
	s.mu.Unlock()

	if !ok {
		respondError(w, http.StatusNotFound, "", "product not found")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) checkAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	productID, _ := strconv.ParseInt(q.Get("productId"), 10, 64)
	start, end := q.Get("startDate"), q.Get("endDate")
	if productID == 0 || start == "" || end == "" || start > end {
		respondError(w, http.StatusBadRequest, "", "invalid availability query")
		return
	}

	s.mu.Lock()
	overlaps := s.hasOverlap(productID, start, end)
	s.mu.Unlock()

	resp := map[string]interface{}{"available": !overlaps}
	if overlaps {
		resp["message"] = "selected dates are already booked"
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	if s.FailBookings {
		respondError(w, http.StatusInternalServerError, "", "backend is down")
		return
	}

	var req struct {
		ProductID int64  `json:"productId"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "", "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasOverlap(req.ProductID, req.StartDate, req.EndDate) {
		respondError(w, http.StatusConflict, CodeDatesUnavailable, "selected dates are already booked")
		return
	}

	b := &Booking{
		ID:        s.nextID,
		ProductID: req.ProductID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    "CONFIRMED",
	}
	s.nextID++
	s.bookings[b.ID] = b
	respondJSON(w, http.StatusCreated, b)
}

func (s *Server) myBookings(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.Bookings())
}

func (s *Server) cancelBooking(w http.ResponseWriter, r *http.Request) {
	if s.FailBookings {
		respondError(w, http.StatusInternalServerError, "", "backend is down")
		return
	}

	id := pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		respondError(w, http.StatusNotFound, "", "booking not found")
		return
	}
	b.Status = "CANCELLED"
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listFavorites(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]map[string]int64, 0, len(s.favorites))
	for id := range s.favorites {
		out = append(out, map[string]int64{"productId": id})
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request) {
	if s.FailFavorites {
		respondError(w, http.StatusInternalServerError, "", "backend is down")
		return
	}

	s.mu.Lock()
	s.favorites[pathID(r)] = struct{}{}
	s.mu.Unlock()
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	if s.FailFavorites {
		respondError(w, http.StatusInternalServerError, "", "backend is down")
		return
	}

	s.mu.Lock()
	delete(s.favorites, pathID(r))
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) submitRating(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.ratings[id]; dup {
		respondError(w, http.StatusConflict, CodeDuplicateRating, "rating already submitted")
		return
	}
	s.ratings[id] = struct{}{}
	w.WriteHeader(http.StatusCreated)
}

// hasOverlap проверяет пересечение диапазона с активными бронированиями продукта
// Дни сравниваются как строки YYYY-MM-DD, границы включительно
func (s *Server) hasOverlap(productID int64, start, end string) bool {
	for _, b := range s.bookings {
		if b.ProductID != productID || b.Status == "CANCELLED" {
			continue
		}
		if b.StartDate <= end && b.EndDate >= start {
			return true
		}
	}
	return false
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorBody{Code: code, Message: message})
}
