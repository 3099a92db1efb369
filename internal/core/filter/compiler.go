package filter

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"listing-service/internal/core/domain"
)

const (
	ParamPropertyType = "propertyType"
	ParamStatus       = "status"
	ParamMinPrice     = "minPrice"
	ParamMaxPrice     = "maxPrice"
	ParamBedrooms     = "bedrooms"
	ParamBathrooms    = "bathrooms"
	ParamCity         = "city"
	ParamState        = "state"
	ParamPage         = "page"
	ParamLimit        = "limit"
	ParamSortBy       = "sortBy"
)

var knownParams = map[string]struct{}{
	ParamPropertyType: {}, ParamStatus: {}, ParamMinPrice: {}, ParamMaxPrice: {},
	ParamBedrooms: {}, ParamBathrooms: {}, ParamCity: {}, ParamState: {},
	ParamPage: {}, ParamLimit: {}, ParamSortBy: {},
}

// Options - параметры пагинации по умолчанию
type Options struct {
	DefaultLimit int
	MaxLimit     int
}

var DefaultOptions = Options{DefaultLimit: 10, MaxLimit: 100}

// Compiler превращает недоверенные параметры запроса в типизированный domain.PropertyQuery.
// Пустые и отсутствующие параметры не накладывают ограничений.
// page < 1 и limit < 1 отклоняются, limit больше MaxLimit урезается до MaxLimit.
type Compiler struct {
	opts Options
}

func NewCompiler(opts Options) *Compiler {
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = DefaultOptions.MaxLimit
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = DefaultOptions.DefaultLimit
	}
	if opts.DefaultLimit > opts.MaxLimit {
		opts.DefaultLimit = opts.MaxLimit
	}
	return &Compiler{opts: opts}
}

func (c *Compiler) Options() Options {
	return c.opts
}

func (c *Compiler) Compile(params map[string]string) (domain.PropertyQuery, error) {
	q := domain.PropertyQuery{
		Sort:       domain.SortNewest,
		Pagination: domain.Pagination{Page: 1, Limit: c.opts.DefaultLimit},
	}

	if err := rejectUnknown(params); err != nil {
		return domain.PropertyQuery{}, err
	}

	get := func(name string) string {
		return strings.TrimSpace(params[name])
	}

	if v := get(ParamPropertyType); v != "" {
		t := domain.PropertyType(v)
		if !t.Valid() {
			return domain.PropertyQuery{}, domain.NewValidationError(ParamPropertyType, fmt.Sprintf("unknown value %q", v))
		}
		q.Predicate.PropertyType = &t
	}

	if v := get(ParamStatus); v != "" {
		s := domain.ListingStatus(v)
		if !s.Valid() {
			return domain.PropertyQuery{}, domain.NewValidationError(ParamStatus, fmt.Sprintf("unknown value %q", v))
		}
		q.Predicate.Status = &s
	}

	var err error
	if q.Predicate.Price.Min, err = parsePrice(ParamMinPrice, get(ParamMinPrice)); err != nil {
		return domain.PropertyQuery{}, err
	}
	if q.Predicate.Price.Max, err = parsePrice(ParamMaxPrice, get(ParamMaxPrice)); err != nil {
		return domain.PropertyQuery{}, err
	}
	if lo, hi := q.Predicate.Price.Min, q.Predicate.Price.Max; lo != nil && hi != nil && *lo > *hi {
		return domain.PropertyQuery{}, domain.NewValidationError(ParamMinPrice, "must not be greater than maxPrice")
	}

	if q.Predicate.Bedrooms, err = parseCount(ParamBedrooms, get(ParamBedrooms)); err != nil {
		return domain.PropertyQuery{}, err
	}
	if q.Predicate.Bathrooms, err = parseCount(ParamBathrooms, get(ParamBathrooms)); err != nil {
		return domain.PropertyQuery{}, err
	}

	q.Predicate.City = get(ParamCity)
	q.Predicate.State = get(ParamState)

	if v := get(ParamPage); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return domain.PropertyQuery{}, domain.NewValidationError(ParamPage, "must be an integer >= 1")
		}
		q.Pagination.Page = page
	}

	if v := get(ParamLimit); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return domain.PropertyQuery{}, domain.NewValidationError(ParamLimit, "must be an integer >= 1")
		}
		if limit > c.opts.MaxLimit {
			limit = c.opts.MaxLimit
		}
		q.Pagination.Limit = limit
	}

	q.Sort = domain.ParseSortKey(get(ParamSortBy))
	return q, nil
}

// rejectUnknown отклоняет посторонние ключи; при нескольких сообщает первый по алфавиту.
func rejectUnknown(params map[string]string) error {
	var unknown []string
	for k := range params {
		if _, ok := knownParams[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return domain.NewValidationError(unknown[0], "unknown query parameter")
}

func parsePrice(field, raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil, domain.NewValidationError(field, "must be a non-negative number")
	}
	return &v, nil
}

func parseCount(field, raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return nil, domain.NewValidationError(field, "must be a non-negative integer")
	}
	return &v, nil
}
