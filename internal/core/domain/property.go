package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PropertyType - тип объекта недвижимости
type PropertyType string

const (
	PropertyTypeHouse     PropertyType = "house"
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeCondo     PropertyType = "condo"
	PropertyTypeTownhouse PropertyType = "townhouse"
	PropertyTypeLand      PropertyType = "land"
)

// PropertyTypes - допустимые значения в порядке объявления
var PropertyTypes = []PropertyType{
	PropertyTypeHouse, PropertyTypeApartment, PropertyTypeCondo, PropertyTypeTownhouse, PropertyTypeLand,
}

func (t PropertyType) Valid() bool {
	for _, v := range PropertyTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ListingStatus - статус объявления (продажа / аренда)
type ListingStatus string

const (
	ListingForSale ListingStatus = "for-sale"
	ListingForRent ListingStatus = "for-rent"
)

var ListingStatuses = []ListingStatus{ListingForSale, ListingForRent}

func (s ListingStatus) Valid() bool {
	return s == ListingForSale || s == ListingForRent
}

type Location struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

type Features struct {
	Bedrooms   int  `json:"bedrooms"`
	Bathrooms  int  `json:"bathrooms"`
	SquareFeet int  `json:"squareFeet"`
	Parking    int  `json:"parking"`
	Furnished  bool `json:"furnished"`
}

// Property - основная доменная сущность объявления.
// OwnerID задается один раз при создании и дальше не меняется.
type Property struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Price        float64       `json:"price"`
	Location     Location      `json:"location"`
	PropertyType PropertyType  `json:"propertyType"`
	Status       ListingStatus `json:"status"`
	Features     Features      `json:"features"`
	Images       []string      `json:"images"`
	OwnerID      string        `json:"owner"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// PropertyDraft - поля объявления, которые может передать клиент.
// Владелец, идентификатор и временные метки сюда не входят.
type PropertyDraft struct {
	Title        string
	Description  string
	Price        float64
	Location     Location
	PropertyType PropertyType
	Status       ListingStatus
	Features     Features
	Images       []string
}

// NewProperty - конструктор; владелец берется только из аутентифицированного субъекта
func NewProperty(draft PropertyDraft, ownerID string, now time.Time) (*Property, error) {
	p := &Property{
		ID:           uuid.Must(uuid.NewV7()).String(),
		Title:        strings.TrimSpace(draft.Title),
		Description:  draft.Description,
		Price:        draft.Price,
		Location:     draft.Location,
		PropertyType: draft.PropertyType,
		Status:       draft.Status,
		Features:     draft.Features,
		Images:       append([]string(nil), draft.Images...),
		OwnerID:      ownerID,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// PropertyPatch - частичное обновление. nil означает "не менять".
type PropertyPatch struct {
	Title        *string
	Description  *string
	Price        *float64
	Address      *string
	City         *string
	State        *string
	ZipCode      *string
	PropertyType *PropertyType
	Status       *ListingStatus
	Bedrooms     *int
	Bathrooms    *int
	SquareFeet   *int
	Parking      *int
	Furnished    *bool
	Images       *[]string

	// Malformed - ошибка разбора тела запроса. Apply вернет ее,
	// но только после проверки прав, поэтому чужой 403 не маскируется под 400.
	Malformed error
}

// Apply возвращает обновленную копию объявления. ID, OwnerID и CreatedAt сохраняются.
func (p Property) Apply(patch PropertyPatch, now time.Time) (*Property, error) {
	if patch.Malformed != nil {
		return nil, patch.Malformed
	}

	next := p
	next.Images = append([]string(nil), p.Images...)

	if patch.Title != nil {
		next.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.Price != nil {
		next.Price = *patch.Price
	}
	if patch.Address != nil {
		next.Location.Address = *patch.Address
	}
	if patch.City != nil {
		next.Location.City = *patch.City
	}
	if patch.State != nil {
		next.Location.State = *patch.State
	}
	if patch.ZipCode != nil {
		next.Location.ZipCode = *patch.ZipCode
	}
	if patch.PropertyType != nil {
		next.PropertyType = *patch.PropertyType
	}
	if patch.Status != nil {
		next.Status = *patch.Status
	}
	if patch.Bedrooms != nil {
		next.Features.Bedrooms = *patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		next.Features.Bathrooms = *patch.Bathrooms
	}
	if patch.SquareFeet != nil {
		next.Features.SquareFeet = *patch.SquareFeet
	}
	if patch.Parking != nil {
		next.Features.Parking = *patch.Parking
	}
	if patch.Furnished != nil {
		next.Features.Furnished = *patch.Furnished
	}
	if patch.Images != nil {
		next.Images = append([]string(nil), (*patch.Images)...)
	}

	if err := next.Validate(); err != nil {
		return nil, err
	}
	next.UpdatedAt = now.UTC()
	return &next, nil
}

// Validate проверяет инварианты объявления
func (p *Property) Validate() error {
	if p.Title == "" {
		return NewValidationError("title", "must not be empty")
	}
	if p.Price < 0 {
		return NewValidationError("price", "must be a non-negative number")
	}
	required := []struct{ field, value string }{
		{"location.address", p.Location.Address},
		{"location.city", p.Location.City},
		{"location.state", p.Location.State},
		{"location.zipCode", p.Location.ZipCode},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return NewValidationError(r.field, "is required")
		}
	}
	if !p.PropertyType.Valid() {
		return NewValidationError("propertyType", fmt.Sprintf("unknown value %q", p.PropertyType))
	}
	if !p.Status.Valid() {
		return NewValidationError("status", fmt.Sprintf("unknown value %q", p.Status))
	}
	if p.Features.Bedrooms < 0 {
		return NewValidationError("features.bedrooms", "must be a non-negative integer")
	}
	if p.Features.Bathrooms < 0 {
		return NewValidationError("features.bathrooms", "must be a non-negative integer")
	}
	if p.Features.SquareFeet <= 0 {
		return NewValidationError("features.squareFeet", "must be a positive integer")
	}
	if p.Features.Parking < 0 {
		return NewValidationError("features.parking", "must be a non-negative integer")
	}
	for i, img := range p.Images {
		if strings.TrimSpace(img) == "" {
			return NewValidationError(fmt.Sprintf("images[%d]", i), "must not be empty")
		}
		if _, err := url.ParseRequestURI(img); err != nil {
			return NewValidationError(fmt.Sprintf("images[%d]", i), "must be a valid URI")
		}
	}
	return nil
}

// OwnerSummary - публичная проекция владельца (только имя и email)
type OwnerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PropertyView - объявление с данными владельца для выдачи
type PropertyView struct {
	Property
	Owner OwnerSummary
}

// PropertySummary - краткие данные объявления, встраиваемые в запросы
type PropertySummary struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Images []string `json:"images"`
}

func (p Property) Summary() PropertySummary {
	return PropertySummary{ID: p.ID, Title: p.Title, Images: append([]string(nil), p.Images...)}
}
