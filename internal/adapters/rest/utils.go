package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"

	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

// classifyError сопоставляет доменную ошибку со статусом и телом ответа.
// Внутренние детали сбоев хранилища наружу не уходят.
func classifyError(err error) (int, string, ErrorResponse) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, "validation", ErrorResponse{Error: validationErr.Error(), Field: validationErr.Field}
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusBadRequest, "invalid_transition", ErrorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated", ErrorResponse{Error: domain.ErrUnauthenticated.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found", ErrorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden", ErrorResponse{Error: err.Error()}
	default:
		return http.StatusInternalServerError, "internal", ErrorResponse{Error: "internal server error"}
	}
}

// respondWithError пишет ответ для ошибки use case и учитывает ее в метриках
func respondWithError(w http.ResponseWriter, logger port.LoggerPort, metrics *Metrics, err error) {
	status, kind, body := classifyError(err)
	metrics.observeFailure(kind)

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", err, nil)
	} else {
		logger.Warn("Request rejected", port.Fields{"status_code": status, "reason": err.Error()})
	}
	RespondWithJSON(w, status, body)
}

// decodeBody читает тело, проверяет его по JSON-схеме и раскладывает в dst
func decodeBody(w http.ResponseWriter, r *http.Request, schemaKey string, dst interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return domain.NewValidationError("body", fmt.Sprintf("cannot read request body: %v", err))
	}
	if err := contracts.Validate(schemaKey, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return domain.NewValidationError("body", "malformed JSON")
	}
	return nil
}

// flattenQuery превращает query-параметры в плоскую карту; повтор ключа - ошибка
func flattenQuery(values url.Values) (map[string]string, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	params := make(map[string]string, len(values))
	for _, k := range keys {
		if len(values[k]) > 1 {
			return nil, domain.NewValidationError(k, "parameter must not be repeated")
		}
		params[k] = values[k][0]
	}
	return params, nil
}
