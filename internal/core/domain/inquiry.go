package domain

import (
	"time"
)

// InquiryStatus - статус обработки запроса по объявлению
type InquiryStatus string

const (
	InquiryNew     InquiryStatus = "new"
	InquiryRead    InquiryStatus = "read"
	InquiryReplied InquiryStatus = "replied"
)

var InquiryStatuses = []InquiryStatus{InquiryNew, InquiryRead, InquiryReplied}

func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryNew, InquiryRead, InquiryReplied:
		return true
	}
	return false
}

// Inquiry - запрос заинтересованного лица по конкретному объявлению.
// PropertyID фиксируется при создании.
type Inquiry struct {
	ID         string        `json:"id"`
	PropertyID string        `json:"property"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone"`
	Message    string        `json:"message"`
	Status     InquiryStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// InquiryInput - данные, которые присылает отправитель
type InquiryInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// InquiryView - запрос со встроенной краткой информацией об объявлении
type InquiryView struct {
	Inquiry
	Property PropertySummary
}
