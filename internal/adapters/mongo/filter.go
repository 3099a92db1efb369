package mongo_adapter

import (
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"listing-service/internal/core/domain"
)

// buildFilter переводит типизированный предикат в фильтр MongoDB
func buildFilter(pred domain.PropertyPredicate) bson.M {
	filter := bson.M{}

	if pred.OwnerID != "" {
		filter["owner"] = pred.OwnerID
	}
	if pred.PropertyType != nil {
		filter["propertyType"] = string(*pred.PropertyType)
	}
	if pred.Status != nil {
		filter["status"] = string(*pred.Status)
	}

	price := bson.M{}
	if pred.Price.Min != nil {
		price["$gte"] = *pred.Price.Min
	}
	if pred.Price.Max != nil {
		price["$lte"] = *pred.Price.Max
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if pred.Bedrooms != nil {
		filter["features.bedrooms"] = *pred.Bedrooms
	}
	if pred.Bathrooms != nil {
		filter["features.bathrooms"] = *pred.Bathrooms
	}
	if pred.City != "" {
		filter["location.city"] = containsRegex(pred.City)
	}
	if pred.State != "" {
		filter["location.state"] = containsRegex(pred.State)
	}
	return filter
}

// containsRegex - подстрока без учета регистра; пользовательский ввод экранируется
func containsRegex(value string) bson.Regex {
	return bson.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}

func sortSpec(key domain.SortKey) bson.D {
	switch key {
	case domain.SortOldest:
		return bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}
	case domain.SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}
	case domain.SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}, {Key: "_id", Value: 1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
	}
}

func findOptions(q domain.PropertyQuery) *options.FindOptionsBuilder {
	opts := options.Find().SetSort(sortSpec(q.Sort))
	if q.Pagination.Limit > 0 {
		opts.SetSkip(int64(q.Pagination.Skip())).SetLimit(int64(q.Pagination.Limit))
	}
	return opts
}
