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

type UpdateInquiryStatusUseCase struct {
	properties port.PropertyStoragePort
	inquiries  port.InquiryStoragePort
	guard      *access.Guard
	lifecycle  *lifecycle.Manager
	events     port.EventPublisherPort
}

func NewUpdateInquiryStatusUseCase(
	properties port.PropertyStoragePort,
	inquiries port.InquiryStoragePort,
	guard *access.Guard,
	manager *lifecycle.Manager,
	events port.EventPublisherPort,
) *UpdateInquiryStatusUseCase {
	return &UpdateInquiryStatusUseCase{properties: properties, inquiries: inquiries, guard: guard, lifecycle: manager, events: events}
}

func (uc *UpdateInquiryStatusUseCase) Execute(ctx context.Context, principal domain.Principal, id string, change domain.StatusChange[domain.InquiryStatus]) (*domain.Inquiry, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "UpdateInquiryStatus", "inquiry_id": id, "new_status": change.Status})

	ucLogger.Info("Use case started", nil)

	inq, res, err := loadInquiry(ctx, uc.properties, uc.inquiries, id)
	if err != nil {
		ucLogger.Error("Storage failed to find inquiry", err, nil)
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

	previous := inq.Status
	if err := uc.lifecycle.TransitionInquiry(inq, change.Status); err != nil {
		ucLogger.Warn("Transition rejected", port.Fields{"error": err.Error(), "from": previous})
		return nil, err
	}

	if err := uc.inquiries.UpdateStatus(ctx, inq.ID, inq.Status, inq.UpdatedAt); err != nil {
		ucLogger.Error("Storage failed to update inquiry status", err, nil)
		return nil, storeErr("update inquiry status", err)
	}

	publish(ctx, uc.events, ucLogger, domain.NewEvent(domain.EventInquiryStatusChanged, inq.ID, principal.UserID, map[string]string{
		"from": string(previous),
		"to":   string(inq.Status),
	}))

	ucLogger.Info("Use case finished successfully", nil)
	return inq, nil
}

// loadInquiry читает запрос и владельца его объявления.
func loadInquiry(ctx context.Context, properties port.PropertyStoragePort, inquiries port.InquiryStoragePort, id string) (*domain.Inquiry, access.Resource, error) {
	res := access.Resource{Kind: access.KindInquiry, ID: id}

	inq, err := inquiries.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			res.Missing = true
			return nil, res, nil
		}
		return nil, res, storeErr("find inquiry", err)
	}

	p, err := properties.FindByID(ctx, inq.PropertyID)
	if err != nil {
		// запрос без объявления никому не принадлежит
		if errors.Is(err, domain.ErrNotFound) {
			res.Missing = true
			return nil, res, nil
		}
		return nil, res, storeErr("find property", err)
	}
	res.OwnerID = p.OwnerID
	return inq, res, nil
}
