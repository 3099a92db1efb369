package query

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// Executor применяет скомпилированный запрос к хранилищу и собирает страницу выдачи.
type Executor struct {
	properties port.PropertyStoragePort
	users      port.UserDirectoryPort
}

func NewExecutor(properties port.PropertyStoragePort, users port.UserDirectoryPort) *Executor {
	return &Executor{properties: properties, users: users}
}

// Execute возвращает страницу объявлений с данными владельцев.
// Пустая выдача не является ошибкой.
func (e *Executor) Execute(ctx context.Context, q domain.PropertyQuery) (*domain.PropertyPage, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "QueryExecutor",
		"page":      q.Pagination.Page,
		"limit":     q.Pagination.Limit,
		"sort":      q.Sort,
	})

	items, total, err := e.properties.FindWithFilters(ctx, q)
	if err != nil {
		logger.Error("Failed to find properties", err, nil)
		return nil, domain.NewStoreError("find properties", err)
	}

	views, err := e.Embed(ctx, items)
	if err != nil {
		return nil, err
	}

	page := &domain.PropertyPage{
		Items:       views,
		TotalCount:  total,
		CurrentPage: q.Pagination.Page,
		TotalPages:  TotalPages(total, q.Pagination.Limit),
		Limit:       q.Pagination.Limit,
	}
	logger.Debug("Query executed", port.Fields{"total_count": total, "returned": len(views)})
	return page, nil
}

// ExecuteOwned - выборка "мои объявления": только владелец, новые первыми, без окна.
func (e *Executor) ExecuteOwned(ctx context.Context, ownerID string) ([]domain.PropertyView, error) {
	q := domain.PropertyQuery{
		Predicate: domain.PropertyPredicate{OwnerID: ownerID},
		Sort:      domain.SortNewest,
	}
	items, _, err := e.properties.FindWithFilters(ctx, q)
	if err != nil {
		return nil, domain.NewStoreError("find owned properties", err)
	}
	return e.Embed(ctx, items)
}

// Embed добавляет к объявлениям имя и email владельца.
// Владелец, отсутствующий в каталоге, представлен только идентификатором.
func (e *Executor) Embed(ctx context.Context, items []domain.Property) ([]domain.PropertyView, error) {
	views := make([]domain.PropertyView, 0, len(items))
	if len(items) == 0 {
		return views, nil
	}

	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, p := range items {
		if _, ok := seen[p.OwnerID]; ok {
			continue
		}
		seen[p.OwnerID] = struct{}{}
		ids = append(ids, p.OwnerID)
	}

	owners, err := e.users.FindSummaries(ctx, ids)
	if err != nil {
		return nil, domain.NewStoreError("find owners", err)
	}

	for _, p := range items {
		owner, ok := owners[p.OwnerID]
		if !ok {
			owner = domain.OwnerSummary{ID: p.OwnerID}
		}
		views = append(views, domain.PropertyView{Property: p, Owner: owner})
	}
	return views, nil
}

// View - одно объявление с владельцем для ответа на запись.
// Запись уже выполнена, поэтому сбой каталога не ошибка: владелец остается только с id.
func (e *Executor) View(ctx context.Context, p domain.Property) domain.PropertyView {
	views, err := e.Embed(ctx, []domain.Property{p})
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Owner lookup failed, returning id only", port.Fields{
			"component":   "QueryExecutor",
			"property_id": p.ID,
			"error":       err.Error(),
		})
		return domain.PropertyView{Property: p, Owner: domain.OwnerSummary{ID: p.OwnerID}}
	}
	return views[0]
}

// TotalPages = ceil(count/limit); 0 при пустой выдаче
func TotalPages(count, limit int) int {
	if count <= 0 {
		return 0
	}
	if limit <= 0 {
		return 1
	}
	return (count + limit - 1) / limit
}
