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

type PropertyHandler struct {
	listUC   usecases_port.ListPropertiesUseCase
	getUC    usecases_port.GetPropertyUseCase
	createUC usecases_port.CreatePropertyUseCase
	updateUC usecases_port.UpdatePropertyUseCase
	deleteUC usecases_port.DeletePropertyUseCase
	mineUC   usecases_port.ListMyPropertiesUseCase
	metrics  *Metrics
}

func NewPropertyHandler(
	listUC usecases_port.ListPropertiesUseCase,
	getUC usecases_port.GetPropertyUseCase,
	createUC usecases_port.CreatePropertyUseCase,
	updateUC usecases_port.UpdatePropertyUseCase,
	deleteUC usecases_port.DeletePropertyUseCase,
	mineUC usecases_port.ListMyPropertiesUseCase,
	metrics *Metrics,
) *PropertyHandler {
	return &PropertyHandler{
		listUC:   listUC,
		getUC:    getUC,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		mineUC:   mineUC,
		metrics:  metrics,
	}
}

// ListProperties обрабатывает GET /api/v1/properties
func (h *PropertyHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListProperties"})

	params, err := flattenQuery(r.URL.Query())
	if err != nil {
		respondWithError(w, logger, h.metrics, err)
		return
	}

	page, err := h.listUC.Execute(r.Context(), params)
	if err != nil {
		respondWithError(w, logger, h.metrics, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, PropertyListResponse{
		Properties:  toPropertyResponses(page.Items),
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
		TotalCount:  page.TotalCount,
		Limit:       page.Limit,
	})
}

// GetProperty обрабатывает GET /api/v1/properties/{propertyID}
func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetProperty", "property_id": propertyID})

	view, err := h.getUC.Execute(r.Context(), propertyID)
	if err != nil {
		respondWithError(w, logger, h.metrics, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyResponse(view.Property, view.Owner))
}

// CreateProperty обрабатывает POST /api/v1/properties
func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateProperty"})
	principal := principalFromRequest(r)

	var req CreatePropertyRequest
	if err := decodeBody(w, r, contracts.PropertyCreate, &req); err != nil {
		respondWithError(w, logger, h.metrics, err)
		return
	}

	created, err := h.createUC.Execute(r.Context(), principal, req.ToDraft())
	if err != nil {
		respondWithError(w, logger, h.metrics, err)
		return
	}

	logger.Info("Property created", port.Fields{"property_id": created.ID})
	RespondWithJSON(w, http.StatusCreated, toPropertyResponse(created.Property, created.Owner))
}

// UpdateProperty обрабатывает PUT /api/v1/properties/{propertyID}
func (h *PropertyHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateProperty", "property_id": propertyID})
	principal := principalFromRequest(r)

	// ошибку тела отдаем use case: права проверяются раньше формата
	var req UpdatePropertyRequest
	patch := domain.PropertyPatch{}
	if err := decodeBody(w, r, contracts.PropertyUpdate, &req); err != nil {
		patch.Malformed = err
	} else {
		patch = req.ToPatch()
	}

	updated, err := h.updateUC.Execute(r.Context(), principal, propertyID, patch)
	if err != nil {
		respondWithError(w, logger, h.metrics, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyResponse(updated.Property, updated.Owner))
}

// DeleteProperty обрабатывает DELETE /api/v1/properties/{propertyID}
func (h *PropertyHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteProperty", "property_id": propertyID})

	if err := h.deleteUC.Execute(r.Context(), principalFromRequest(r), propertyID); err != nil {
		respondWithError(w, logger, h.metrics, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Property deleted successfully"})
}

// ListMyProperties обрабатывает GET /api/v1/user/properties
func (h *PropertyHandler) ListMyProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListMyProperties"})

	views, err := h.mineUC.Execute(r.Context(), principalFromRequest(r))
	if err != nil {
		respondWithError(w, logger, h.metrics, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyResponses(views))
}
