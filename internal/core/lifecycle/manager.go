package lifecycle

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"listing-service/internal/core/domain"
)

// Переходы статусов запросов: владелец может выставить любой из трех статусов.
var inquiryTransitions = map[domain.InquiryStatus][]domain.InquiryStatus{
	domain.InquiryNew:     {domain.InquiryRead, domain.InquiryReplied},
	domain.InquiryRead:    {domain.InquiryNew, domain.InquiryReplied},
	domain.InquiryReplied: {domain.InquiryNew, domain.InquiryRead},
}

// Обращения: администратор может вернуть обращение на рассмотрение после закрытия.
var contactTransitions = map[domain.ContactStatus][]domain.ContactStatus{
	domain.ContactNew:      {domain.ContactInReview, domain.ContactResolved},
	domain.ContactInReview: {domain.ContactNew, domain.ContactResolved},
	domain.ContactResolved: {domain.ContactInReview},
}

// Manager создает запросы и обращения и переводит их между статусами.
type Manager struct {
	now func() time.Time
}

func NewManager() *Manager {
	return &Manager{now: time.Now}
}

// NewManagerWithClock - для тестов с фиксированным временем
func NewManagerWithClock(now func() time.Time) *Manager {
	return &Manager{now: now}
}

func (m *Manager) Now() time.Time {
	return m.now().UTC()
}

func (m *Manager) NewInquiry(propertyID string, in domain.InquiryInput) (*domain.Inquiry, error) {
	in = domain.InquiryInput{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Message: strings.TrimSpace(in.Message),
	}
	if err := requireFields(map[string]string{
		"name": in.Name, "email": in.Email, "phone": in.Phone, "message": in.Message,
	}, "name", "email", "phone", "message"); err != nil {
		return nil, err
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}

	now := m.Now()
	return &domain.Inquiry{
		ID:         uuid.Must(uuid.NewV7()).String(),
		PropertyID: propertyID,
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Message:    in.Message,
		Status:     domain.InquiryNew,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// TransitionInquiry меняет статус запроса на месте. Повторная установка того же статуса допустима.
func (m *Manager) TransitionInquiry(inq *domain.Inquiry, to domain.InquiryStatus) error {
	if !to.Valid() {
		return domain.NewValidationError("status", fmt.Sprintf("unknown value %q", to))
	}
	if inq.Status != to && !contains(inquiryTransitions[inq.Status], to) {
		return fmt.Errorf("%w: inquiry %s -> %s", domain.ErrInvalidTransition, inq.Status, to)
	}
	inq.Status = to
	inq.UpdatedAt = m.Now()
	return nil
}

func (m *Manager) NewContact(in domain.ContactInput) (*domain.Contact, error) {
	in = domain.ContactInput{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
	if err := requireFields(map[string]string{
		"name": in.Name, "email": in.Email, "subject": in.Subject, "message": in.Message,
	}, "name", "email", "subject", "message"); err != nil {
		return nil, err
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}

	now := m.Now()
	return &domain.Contact{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		Status:    domain.ContactNew,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (m *Manager) TransitionContact(c *domain.Contact, to domain.ContactStatus) error {
	if !to.Valid() {
		return domain.NewValidationError("status", fmt.Sprintf("unknown value %q", to))
	}
	if c.Status != to && !contains(contactTransitions[c.Status], to) {
		return fmt.Errorf("%w: contact %s -> %s", domain.ErrInvalidTransition, c.Status, to)
	}
	c.Status = to
	c.UpdatedAt = m.Now()
	return nil
}

func requireFields(values map[string]string, order ...string) error {
	for _, name := range order {
		if values[name] == "" {
			return domain.NewValidationError(name, "is required")
		}
	}
	return nil
}

// validateEmail принимает только голый адрес, без имени и угловых скобок
func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return domain.NewValidationError("email", "must be a valid email address")
	}
	return nil
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
