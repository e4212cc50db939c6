package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"points-backend/internal/domain"
	"points-backend/internal/logger"
)

// apiResponse is the envelope every endpoint returns.
type apiResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func respondOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, apiResponse{Code: http.StatusOK, Message: "success", Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiResponse{Code: status, Message: message})
}

// respondServiceError maps domain errors to HTTP statuses and attaches the
// structured detail the client needs to render an actionable message.
func respondServiceError(w http.ResponseWriter, err error) {
	var (
		balErr   *domain.InsufficientBalanceError
		stockErr *domain.InsufficientStockError
		quotaErr *domain.QuotaExceededError
	)

	switch {
	case errors.As(err, &balErr):
		writeJSON(w, http.StatusConflict, apiResponse{
			Code:    http.StatusConflict,
			Message: balErr.Error(),
			Data:    map[string]int32{"balance": balErr.Balance, "required": balErr.Required},
		})
	case errors.As(err, &stockErr):
		writeJSON(w, http.StatusConflict, apiResponse{
			Code:    http.StatusConflict,
			Message: stockErr.Error(),
			Data:    map[string]int32{"stock": stockErr.Stock, "required": stockErr.Required},
		})
	case errors.As(err, &quotaErr):
		writeJSON(w, http.StatusConflict, apiResponse{
			Code:    http.StatusConflict,
			Message: quotaErr.Error(),
			Data:    map[string]int32{"used": quotaErr.Used, "limit": quotaErr.Limit, "remaining": quotaErr.Remaining},
		})
	case errors.Is(err, domain.ErrCodeNotFound):
		writeJSON(w, http.StatusBadRequest, apiResponse{
			Code: http.StatusBadRequest, Message: err.Error(),
			Data: map[string]string{"reason": "not_found"},
		})
	case errors.Is(err, domain.ErrCodeExpired):
		writeJSON(w, http.StatusBadRequest, apiResponse{
			Code: http.StatusBadRequest, Message: err.Error(),
			Data: map[string]string{"reason": "expired"},
		})
	case errors.Is(err, domain.ErrCodeMismatch):
		writeJSON(w, http.StatusBadRequest, apiResponse{
			Code: http.StatusBadRequest, Message: err.Error(),
			Data: map[string]string{"reason": "mismatch"},
		})
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrAccountNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrMissingCode),
		errors.Is(err, domain.ErrNoContactHandle),
		errors.Is(err, domain.ErrMisconfiguredProduct):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("internal error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
