package domain

import "math"

// SortKey - закрытый набор вариантов сортировки выдачи
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// ParseSortKey возвращает SortNewest для пустого и неизвестного значения
func ParseSortKey(raw string) SortKey {
	switch SortKey(raw) {
	case SortOldest, SortPriceAsc, SortPriceDesc:
		return SortKey(raw)
	}
	return SortNewest
}

// PriceRange - границы цены, каждая необязательна
type PriceRange struct {
	Min *float64
	Max *float64
}

// PropertyPredicate - типизированное условие отбора объявлений.
// nil-поле означает отсутствие ограничения.
type PropertyPredicate struct {
	PropertyType *PropertyType
	Status       *ListingStatus
	Price        PriceRange
	Bedrooms     *int
	Bathrooms    *int
	City         string // подстрока без учета регистра
	State        string // подстрока без учета регистра
	OwnerID      string // только для выборки "мои объявления"
}

// Pagination - окно выдачи. Limit == 0 означает "без ограничения".
type Pagination struct {
	Page  int
	Limit int
}

// Skip - число пропускаемых записей. При переполнении насыщается до math.MaxInt,
// такая страница заведомо за концом выдачи.
func (p Pagination) Skip() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// PropertyQuery - результат компиляции фильтра; не зависит от хранилища
type PropertyQuery struct {
	Predicate  PropertyPredicate
	Sort       SortKey
	Pagination Pagination
}

// PropertyPage - страница выдачи с метаданными пагинации
type PropertyPage struct {
	Items       []PropertyView
	TotalCount  int
	CurrentPage int
	TotalPages  int
	Limit       int
}
