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

type InquiryHandler struct {
	createUC       usecases_port.CreateInquiryUseCase
	listMineUC     usecases_port.ListMyInquiriesUseCase
	listPropertyUC usecases_port.ListPropertyInquiriesUseCase
	updateStatusUC usecases_port.UpdateInquiryStatusUseCase
	deleteUC       usecases_port.DeleteInquiryUseCase
	metrics        *Metrics
}

func NewInquiryHandler(
	createUC usecases_port.CreateInquiryUseCase,
	listMineUC usecases_port.ListMyInquiriesUseCase,
	listPropertyUC usecases_port.ListPropertyInquiriesUseCase,
	updateStatusUC usecases_port.UpdateInquiryStatusUseCase,
	deleteUC usecases_port.DeleteInquiryUseCase,
	metrics *Metrics,
) *InquiryHandler {
	return &InquiryHandler{
		createUC:       createUC,
		listMineUC:     listMineUC,
		listPropertyUC: listPropertyUC,
		updateStatusUC: updateStatusUC,
		deleteUC:       deleteUC,
		metrics:        metrics,
	}
}

// CreateInquiry обрабатывает POST /api/v1/properties/{propertyID}/inquiry
func (h *InquiryHandler) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateInquiry", "property_id": propertyID})

	var req InquiryRequest
	if err := decodeBody(w, r, contracts.InquiryCreate, &req); err != nil {
		respondWithError(w, logger, h.metrics, err)
		return
	}

	inq, err := h.createUC.Execute(r.Context(), propertyID, req.ToInput())
	if err != nil {
		respondWithError(w, logger, h.metrics, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, InquiryCreatedResponse{
		Success: true,
		Message: "Inquiry sent successfully",
		Inquiry: toInquiryResponse(*inq, nil),
	})
}

// ListMyInquiries обрабатывает GET /api/v1/user/inquiries
func (h *InquiryHandler) ListMyInquiries(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListMyInquiries"})

	views, err := h.listMineUC.Execute(r.Context(), principalFromRequest(r))
	if err != nil {
		respondWithError(w, logger, h.metrics, err)
		return
	}

	out := make([]InquiryResponse, len(views))
	for i, v := range views {
		out[i] = toInquiryResponse(v.Inquiry, toSummaryResponse(v.Property))
	}
	RespondWithJSON(w, http.StatusOK, InquiryListResponse{Success: true, Inquiries: out})
}

// ListPropertyInquiries обрабатывает GET /api/v1/properties/{propertyID}/inquiries
func (h *InquiryHandler) ListPropertyInquiries(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListPropertyInquiries", "property_id": propertyID})

	items, err := h.listPropertyUC.Execute(r.Context(), principalFromRequest(r), propertyID)
	if err != nil {
		respondWithError(w, logger, h.metrics, err)
		return
	}

	out := make([]InquiryResponse, len(items))
	for i, inq := range items {
		out[i] = toInquiryResponse(inq, nil)
	}
	RespondWithJSON(w, http.StatusOK, InquiryListResponse{Success: true, Inquiries: out})
}

// UpdateInquiryStatus обрабатывает PATCH /api/v1/inquiries/{inquiryID}
func (h *InquiryHandler) UpdateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	inquiryID := chi.URLParam(r, "inquiryID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateInquiryStatus", "inquiry_id": inquiryID})

	var req StatusRequest
	change := domain.StatusChange[domain.InquiryStatus]{}
	if err := decodeBody(w, r, contracts.InquiryStatus, &req); err != nil {
		change.Malformed = err
	} else {
		change.Status = domain.InquiryStatus(req.Status)
	}

	inq, err := h.updateStatusUC.Execute(r.Context(), principalFromRequest(r), inquiryID, change)
	if err != nil {
		respondWithError(w, logger, h.metrics, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, InquiryUpdatedResponse{Success: true, Inquiry: toInquiryResponse(*inq, nil)})
}

// DeleteInquiry обрабатывает DELETE /api/v1/inquiries/{inquiryID}
func (h *InquiryHandler) DeleteInquiry(w http.ResponseWriter, r *http.Request) {
	inquiryID := chi.URLParam(r, "inquiryID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteInquiry", "inquiry_id": inquiryID})

	if err := h.deleteUC.Execute(r.Context(), principalFromRequest(r), inquiryID); err != nil {
		respondWithError(w, logger, h.metrics, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Inquiry deleted successfully"})
}

func toSummaryResponse(s domain.PropertySummary) PropertySummaryResponse {
	images := s.Images
	if images == nil {
		images = []string{}
	}
	return PropertySummaryResponse{ID: s.ID, Title: s.Title, Images: images}
}
