package domain

import "time"

// ContactStatus - статус обращения к администрации
type ContactStatus string

const (
	ContactNew      ContactStatus = "new"
	ContactInReview ContactStatus = "in-review"
	ContactResolved ContactStatus = "resolved"
)

var ContactStatuses = []ContactStatus{ContactNew, ContactInReview, ContactResolved}

func (s ContactStatus) Valid() bool {
	switch s {
	case ContactNew, ContactInReview, ContactResolved:
		return true
	}
	return false
}

type Contact struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}
