package usecase

import (
	"context"
	"errors"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/access"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/lifecycle"
	"listing-service/internal/core/port"
)

type UpdateContactStatusUseCase struct {
	contacts  port.ContactStoragePort
	guard     *access.Guard
	lifecycle *lifecycle.Manager
	events    port.EventPublisherPort
}

func NewUpdateContactStatusUseCase(contacts port.ContactStoragePort, guard *access.Guard, manager *lifecycle.Manager, events port.EventPublisherPort) *UpdateContactStatusUseCase {
	return &UpdateContactStatusUseCase{contacts: contacts, guard: guard, lifecycle: manager, events: events}
}

func (uc *UpdateContactStatusUseCase) Execute(ctx context.Context, principal domain.Principal, id string, change domain.StatusChange[domain.ContactStatus]) (*domain.Contact, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "UpdateContactStatus", "contact_id": id, "new_status": change.Status})

	ucLogger.Info("Use case started", nil)

	c, res, err := loadContact(ctx, uc.contacts, id)
	if err != nil {
		ucLogger.Error("Storage failed to find contact", err, nil)
		return nil, err
	}

	decision := uc.guard.Decide(principal, access.ActionUpdate, res)
	if err := decision.Err(); err != nil {
		ucLogger.Warn("Access denied", port.Fields{"reason": decision.Reason})
		return nil, err
	}

	if change.Malformed != nil {
		ucLogger.Warn("Malformed status body", port.Fields{"error": change.Malformed.Error()})
		return nil, change.Malformed
	}

	previous := c.Status
	if err := uc.lifecycle.TransitionContact(c, change.Status); err != nil {
		ucLogger.Warn("Transition rejected", port.Fields{"error": err.Error(), "from": previous})
		return nil, err
	}

	if err := uc.contacts.UpdateStatus(ctx, c.ID, c.Status, c.UpdatedAt); err != nil {
		ucLogger.Error("Storage failed to update contact status", err, nil)
		return nil, storeErr("update contact status", err)
	}

	publish(ctx, uc.events, ucLogger, domain.NewEvent(domain.EventContactStatusChanged, c.ID, principal.UserID, map[string]string{
		"from": string(previous),
		"to":   string(c.Status),
	}))

	ucLogger.Info("Use case finished successfully", nil)
	return c, nil
}

func loadContact(ctx context.Context, contacts port.ContactStoragePort, id string) (*domain.Contact, access.Resource, error) {
	res := access.Resource{Kind: access.KindContact, ID: id}
	c, err := contacts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			res.Missing = true
			return nil, res, nil
		}
		return nil, res, storeErr("find contact", err)
	}
	return c, res, nil
}
