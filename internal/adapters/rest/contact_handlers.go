package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"listing-service/internal/contextkeys"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
)

type ContactHandler struct {
	createUC       usecases_port.CreateContactUseCase
	listUC         usecases_port.ListContactsUseCase
	updateStatusUC usecases_port.UpdateContactStatusUseCase
	deleteUC       usecases_port.DeleteContactUseCase
	metrics        *Metrics
}

func NewContactHandler(
	createUC usecases_port.CreateContactUseCase,
	listUC usecases_port.ListContactsUseCase,
	updateStatusUC usecases_port.UpdateContactStatusUseCase,
	deleteUC usecases_port.DeleteContactUseCase,
	metrics *Metrics,
) *ContactHandler {
	return &ContactHandler{
		createUC:       createUC,
		listUC:         listUC,
		updateStatusUC: updateStatusUC,
		deleteUC:       deleteUC,
		metrics:        metrics,
	}
}

// CreateContact обрабатывает POST /api/v1/contact
func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateContact"})

	var req ContactRequest
	if err := decodeBody(w, r, contracts.ContactCreate, &req); err != nil {
		respondWithError(w, logger, h.metrics, err)
		return
	}

	c, err := h.createUC.Execute(r.Context(), req.ToInput())
	if err != nil {
		respondWithError(w, logger, h.metrics, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, ContactCreatedResponse{Message: "Message sent successfully", ID: c.ID})
}

// ListContacts обрабатывает GET /api/v1/contact
func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListContacts"})

	items, err := h.listUC.Execute(r.Context(), principalFromRequest(r))
	if err != nil {
		respondWithError(w, logger, h.metrics, err)
		return
	}

	out := make([]ContactResponse, len(items))
	for i, c := range items {
		out[i] = toContactResponse(c)
	}
	RespondWithJSON(w, http.StatusOK, out)
}

// UpdateContactStatus обрабатывает PATCH /api/v1/contact/{contactID}
func (h *ContactHandler) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "contactID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateContactStatus", "contact_id": contactID})

	// ошибку тела отдаем use case: права проверяются раньше формата
	var req StatusRequest
	change := domain.StatusChange[domain.ContactStatus]{}
	if err := decodeBody(w, r, contracts.ContactStatus, &req); err != nil {
		change.Malformed = err
	} else {
		change.Status = domain.ContactStatus(req.Status)
	}

	c, err := h.updateStatusUC.Execute(r.Context(), principalFromRequest(r), contactID, change)
	if err != nil {
		respondWithError(w, logger, h.metrics, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toContactResponse(*c))
}

// DeleteContact обрабатывает DELETE /api/v1/contact/{contactID}
func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "contactID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteContact", "contact_id": contactID})

	if err := h.deleteUC.Execute(r.Context(), principalFromRequest(r), contactID); err != nil {
		respondWithError(w, logger, h.metrics, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Contact message deleted successfully"})
}
