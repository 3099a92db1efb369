package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/access"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/lifecycle"
	"listing-service/internal/core/port"
)

type CreateContactUseCase struct {
	contacts  port.ContactStoragePort
	guard     *access.Guard
	lifecycle *lifecycle.Manager
	events    port.EventPublisherPort
}

func NewCreateContactUseCase(contacts port.ContactStoragePort, guard *access.Guard, manager *lifecycle.Manager, events port.EventPublisherPort) *CreateContactUseCase {
	return &CreateContactUseCase{contacts: contacts, guard: guard, lifecycle: manager, events: events}
}

func (uc *CreateContactUseCase) Execute(ctx context.Context, input domain.ContactInput) (*domain.Contact, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "CreateContact"})

	ucLogger.Info("Use case started", nil)

	decision := uc.guard.Decide(domain.Anonymous, access.ActionCreate, access.Resource{Kind: access.KindContact})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	c, err := uc.lifecycle.NewContact(input)
	if err != nil {
		ucLogger.Warn("Contact input rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	if err := uc.contacts.Create(ctx, c); err != nil {
		ucLogger.Error("Storage failed to create contact", err, nil)
		return nil, storeErr("create contact", err)
	}

	publish(ctx, uc.events, ucLogger, domain.NewEvent(domain.EventContactCreated, c.ID, "", map[string]string{"subject": c.Subject}))

	ucLogger.Info("Use case finished successfully", port.Fields{"contact_id": c.ID})
	return c, nil
}
