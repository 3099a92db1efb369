package mongo_adapter

import (
	"time"

	"listing-service/internal/core/domain"
)

type locationDoc struct {
	Address string `bson:"address"`
	City    string `bson:"city"`
	State   string `bson:"state"`
	ZipCode string `bson:"zipCode"`
}

type featuresDoc struct {
	Bedrooms   int  `bson:"bedrooms"`
	Bathrooms  int  `bson:"bathrooms"`
	SquareFeet int  `bson:"squareFeet"`
	Parking    int  `bson:"parking"`
	Furnished  bool `bson:"furnished"`
}

type propertyDoc struct {
	ID           string      `bson:"_id"`
	Title        string      `bson:"title"`
	Description  string      `bson:"description"`
	Price        float64     `bson:"price"`
	Location     locationDoc `bson:"location"`
	PropertyType string      `bson:"propertyType"`
	Status       string      `bson:"status"`
	Features     featuresDoc `bson:"features"`
	Images       []string    `bson:"images"`
	OwnerID      string      `bson:"owner"`
	CreatedAt    time.Time   `bson:"createdAt"`
	UpdatedAt    time.Time   `bson:"updatedAt"`
}

func toPropertyDoc(p *domain.Property) propertyDoc {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return propertyDoc{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		Location:     locationDoc(p.Location),
		PropertyType: string(p.PropertyType),
		Status:       string(p.Status),
		Features:     featuresDoc(p.Features),
		Images:       images,
		OwnerID:      p.OwnerID,
		CreatedAt:    p.CreatedAt.UTC(),
		UpdatedAt:    p.UpdatedAt.UTC(),
	}
}

func (d propertyDoc) toDomain() domain.Property {
	images := d.Images
	if images == nil {
		images = []string{}
	}
	return domain.Property{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		Price:        d.Price,
		Location:     domain.Location(d.Location),
		PropertyType: domain.PropertyType(d.PropertyType),
		Status:       domain.ListingStatus(d.Status),
		Features:     domain.Features(d.Features),
		Images:       images,
		OwnerID:      d.OwnerID,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type inquiryDoc struct {
	ID         string    `bson:"_id"`
	PropertyID string    `bson:"property"`
	Name       string    `bson:"name"`
	Email      string    `bson:"email"`
	Phone      string    `bson:"phone"`
	Message    string    `bson:"message"`
	Status     string    `bson:"status"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

func toInquiryDoc(inq *domain.Inquiry) inquiryDoc {
	return inquiryDoc{
		ID:         inq.ID,
		PropertyID: inq.PropertyID,
		Name:       inq.Name,
		Email:      inq.Email,
		Phone:      inq.Phone,
		Message:    inq.Message,
		Status:     string(inq.Status),
		CreatedAt:  inq.CreatedAt.UTC(),
		UpdatedAt:  inq.UpdatedAt.UTC(),
	}
}

func (d inquiryDoc) toDomain() domain.Inquiry {
	return domain.Inquiry{
		ID:         d.ID,
		PropertyID: d.PropertyID,
		Name:       d.Name,
		Email:      d.Email,
		Phone:      d.Phone,
		Message:    d.Message,
		Status:     domain.InquiryStatus(d.Status),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type contactDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Subject   string    `bson:"subject"`
	Message   string    `bson:"message"`
	Status    string    `bson:"status"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func toContactDoc(c *domain.Contact) contactDoc {
	return contactDoc{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Subject:   c.Subject,
		Message:   c.Message,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
	}
}

func (d contactDoc) toDomain() domain.Contact {
	return domain.Contact{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Subject:   d.Subject,
		Message:   d.Message,
		Status:    domain.ContactStatus(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type userDoc struct {
	ID    string `bson:"_id"`
	Name  string `bson:"name"`
	Email string `bson:"email"`
}
