package rest

import (
	"time"

	"listing-service/internal/core/domain"
)

// --- запросы ---

type LocationRequest struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

type FeaturesRequest struct {
	Bedrooms   int  `json:"bedrooms"`
	Bathrooms  int  `json:"bathrooms"`
	SquareFeet int  `json:"squareFeet"`
	Parking    int  `json:"parking"`
	Furnished  bool `json:"furnished"`
}

// CreatePropertyRequest - тело POST /properties. Поле owner, если пришло, игнорируется.
type CreatePropertyRequest struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        float64         `json:"price"`
	Location     LocationRequest `json:"location"`
	PropertyType string          `json:"propertyType"`
	Status       string          `json:"status"`
	Features     FeaturesRequest `json:"features"`
	Images       []string        `json:"images"`
}

func (req CreatePropertyRequest) ToDraft() domain.PropertyDraft {
	return domain.PropertyDraft{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Location:     domain.Location(req.Location),
		PropertyType: domain.PropertyType(req.PropertyType),
		Status:       domain.ListingStatus(req.Status),
		Features:     domain.Features(req.Features),
		Images:       req.Images,
	}
}

type LocationPatchRequest struct {
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zipCode"`
}

type FeaturesPatchRequest struct {
	Bedrooms   *int  `json:"bedrooms"`
	Bathrooms  *int  `json:"bathrooms"`
	SquareFeet *int  `json:"squareFeet"`
	Parking    *int  `json:"parking"`
	Furnished  *bool `json:"furnished"`
}

// UpdatePropertyRequest - частичное обновление; отсутствующие поля не меняются
type UpdatePropertyRequest struct {
	Title        *string               `json:"title"`
	Description  *string               `json:"description"`
	Price        *float64              `json:"price"`
	Location     *LocationPatchRequest `json:"location"`
	PropertyType *string               `json:"propertyType"`
	Status       *string               `json:"status"`
	Features     *FeaturesPatchRequest `json:"features"`
	Images       *[]string             `json:"images"`
}

func (req UpdatePropertyRequest) ToPatch() domain.PropertyPatch {
	patch := domain.PropertyPatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
	}
	if req.PropertyType != nil {
		t := domain.PropertyType(*req.PropertyType)
		patch.PropertyType = &t
	}
	if req.Status != nil {
		s := domain.ListingStatus(*req.Status)
		patch.Status = &s
	}
	if loc := req.Location; loc != nil {
		patch.Address, patch.City, patch.State, patch.ZipCode = loc.Address, loc.City, loc.State, loc.ZipCode
	}
	if f := req.Features; f != nil {
		patch.Bedrooms, patch.Bathrooms, patch.SquareFeet = f.Bedrooms, f.Bathrooms, f.SquareFeet
		patch.Parking, patch.Furnished = f.Parking, f.Furnished
	}
	return patch
}

type InquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (req InquiryRequest) ToInput() domain.InquiryInput {
	return domain.InquiryInput(req)
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (req ContactRequest) ToInput() domain.ContactInput {
	return domain.ContactInput(req)
}

type StatusRequest struct {
	Status string `json:"status"`
}

// --- ответы ---

type OwnerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type PropertyResponse struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        float64         `json:"price"`
	Location     domain.Location `json:"location"`
	PropertyType string          `json:"propertyType"`
	Status       string          `json:"status"`
	Features     domain.Features `json:"features"`
	Images       []string        `json:"images"`
	Owner        OwnerResponse   `json:"owner"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func toPropertyResponse(p domain.Property, owner domain.OwnerSummary) PropertyResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	if owner.ID == "" {
		owner.ID = p.OwnerID
	}
	return PropertyResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		Location:     p.Location,
		PropertyType: string(p.PropertyType),
		Status:       string(p.Status),
		Features:     p.Features,
		Images:       images,
		Owner:        OwnerResponse(owner),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toPropertyResponses(views []domain.PropertyView) []PropertyResponse {
	out := make([]PropertyResponse, len(views))
	for i, v := range views {
		out[i] = toPropertyResponse(v.Property, v.Owner)
	}
	return out
}

type PropertyListResponse struct {
	Properties  []PropertyResponse `json:"properties"`
	TotalPages  int                `json:"totalPages"`
	CurrentPage int                `json:"currentPage"`
	TotalCount  int                `json:"totalCount"`
	Limit       int                `json:"limit"`
}

type PropertySummaryResponse struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Images []string `json:"images"`
}

type InquiryResponse struct {
	ID        string      `json:"id"`
	Property  interface{} `json:"property"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Message   string      `json:"message"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// toInquiryResponse: property - либо id, либо краткая карточка объявления
func toInquiryResponse(inq domain.Inquiry, property interface{}) InquiryResponse {
	if property == nil {
		property = inq.PropertyID
	}
	return InquiryResponse{
		ID:        inq.ID,
		Property:  property,
		Name:      inq.Name,
		Email:     inq.Email,
		Phone:     inq.Phone,
		Message:   inq.Message,
		Status:    string(inq.Status),
		CreatedAt: inq.CreatedAt,
		UpdatedAt: inq.UpdatedAt,
	}
}

type InquiryCreatedResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Inquiry InquiryResponse `json:"inquiry"`
}

type InquiryListResponse struct {
	Success   bool              `json:"success"`
	Inquiries []InquiryResponse `json:"inquiries"`
}

type InquiryUpdatedResponse struct {
	Success bool            `json:"success"`
	Inquiry InquiryResponse `json:"inquiry"`
}

type ContactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toContactResponse(c domain.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Subject:   c.Subject,
		Message:   c.Message,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type ContactCreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
