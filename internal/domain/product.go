package domain

// Product represents a marketplace listing in the catalog
type Product struct {
	ID          int64
	Title       string
	Description string
	PricePerDay float64
	City        string
	Rating      float64
	RatingCount int
}

// ProductFilter фильтр каталога для поиска продуктов
// Все поля опциональные: nil означает отсутствие ограничения
type ProductFilter struct {
	Query    *string
	City     *string
	MinPrice *float64
	MaxPrice *float64
	Page     int
	PageSize int
}
