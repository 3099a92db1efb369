package postgres_adapter

import (
	"fmt"
	"strings"

	"listing-service/internal/core/domain"
)

const propertyColumns = `id, title, description, price, address, city, state, zip_code,
	property_type, status, bedrooms, bathrooms, square_feet, parking, furnished,
	images, owner_id, created_at, updated_at`

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId: 1,
		args:  make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

func (qb *queryBuilder) AddFloatFilter(fieldName string, lo *float64, hi *float64) {
	if lo != nil {
		qb.addCondition("%s >= $%d", fieldName, *lo)
	}
	if hi != nil {
		qb.addCondition("%s <= $%d", fieldName, *hi)
	}
}

// AddContainsFilter - поиск подстроки без учета регистра; спецсимволы LIKE экранируются
func (qb *queryBuilder) AddContainsFilter(fieldName string, value string) {
	if value == "" {
		return
	}
	qb.addCondition(`%s ILIKE $%d ESCAPE '\'`, fieldName, "%"+escapeLike(value)+"%")
}

func (qb *queryBuilder) whereClause() string {
	if len(qb.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(qb.conditions, " AND ")
}

// pageClause добавляет LIMIT/OFFSET; при Limit == 0 выборка без ограничения
func (qb *queryBuilder) pageClause(p domain.Pagination) string {
	if p.Limit <= 0 {
		return ""
	}
	clause := fmt.Sprintf("LIMIT $%d OFFSET $%d", qb.argId, qb.argId+1)
	qb.args = append(qb.args, p.Limit, p.Skip())
	qb.argId += 2
	return clause
}

// applyPredicate переводит типизированный предикат в WHERE
func applyPredicate(pred domain.PropertyPredicate) *queryBuilder {
	qb := newQueryBuilder()

	if pred.OwnerID != "" {
		qb.addCondition("%s = $%d", "owner_id", pred.OwnerID)
	}
	if pred.PropertyType != nil {
		qb.addCondition("%s = $%d", "property_type", string(*pred.PropertyType))
	}
	if pred.Status != nil {
		qb.addCondition("%s = $%d", "status", string(*pred.Status))
	}

	qb.AddFloatFilter("price", pred.Price.Min, pred.Price.Max)

	if pred.Bedrooms != nil {
		qb.addCondition("%s = $%d", "bedrooms", *pred.Bedrooms)
	}
	if pred.Bathrooms != nil {
		qb.addCondition("%s = $%d", "bathrooms", *pred.Bathrooms)
	}

	qb.AddContainsFilter("city", pred.City)
	qb.AddContainsFilter("state", pred.State)

	return qb
}

// orderClause - полный порядок: id разрешает равенство основного ключа
func orderClause(key domain.SortKey) string {
	switch key {
	case domain.SortOldest:
		return "ORDER BY created_at ASC, id ASC"
	case domain.SortPriceAsc:
		return "ORDER BY price ASC, id ASC"
	case domain.SortPriceDesc:
		return "ORDER BY price DESC, id ASC"
	default:
		return "ORDER BY created_at DESC, id DESC"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// buildFindQueries возвращает запрос страницы и запрос подсчета с общими аргументами
func buildFindQueries(q domain.PropertyQuery) (string, []interface{}, string, []interface{}) {
	qb := applyPredicate(q.Predicate)
	where := qb.whereClause()

	countArgs := append([]interface{}(nil), qb.args...)
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM properties %s", where)

	page := qb.pageClause(q.Pagination)
	selectQuery := strings.TrimSpace(fmt.Sprintf("SELECT %s FROM properties %s %s %s",
		propertyColumns, where, orderClause(q.Sort), page))

	return selectQuery, qb.args, countQuery, countArgs
}
