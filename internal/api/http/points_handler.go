package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"points-backend/internal/domain"
	"points-backend/internal/service"
)

// PointsHandler serves the points and redemption API.
type PointsHandler struct {
	ledgerSvc     service.LedgerService
	redemptionSvc service.RedemptionService
	echoCode      bool // dev mode: return the issued code in the response
}

func NewPointsHandler(ledgerSvc service.LedgerService, redemptionSvc service.RedemptionService, echoCode bool) *PointsHandler {
	return &PointsHandler{
		ledgerSvc:     ledgerSvc,
		redemptionSvc: redemptionSvc,
		echoCode:      echoCode,
	}
}

func (h *PointsHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	balance, err := h.ledgerSvc.GetBalance(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondOK(w, balance)
}

func (h *PointsHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	typeFilter := r.URL.Query().Get("type")
	if typeFilter == "" {
		typeFilter = "all"
	}
	timeRange := r.URL.Query().Get("timeRange")
	if timeRange == "" {
		timeRange = "30days"
	}

	records, err := h.ledgerSvc.GetRecords(r.Context(), userID, typeFilter, timeRange)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondOK(w, records)
}

func (h *PointsHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	code, err := h.redemptionSvc.SendVerificationCode(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := apiResponse{Code: http.StatusOK, Message: "verification code sent"}
	if h.echoCode {
		resp.Data = code
	}
	writeJSON(w, http.StatusOK, resp)
}

type exchangeRequest struct {
	ProductID        string `json:"product_id"`
	Quantity         int32  `json:"quantity"`
	VerificationCode string `json:"verification_code"`
}

func (h *PointsHandler) Exchange(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req exchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	rec, err := h.redemptionSvc.Redeem(r.Context(), userID, req.ProductID, req.Quantity, req.VerificationCode)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondOK(w, rec)
}

type pointsMutationRequest struct {
	Points      int32  `json:"points"`
	Description string `json:"description"`
	Details     string `json:"details"`
}

func (h *PointsHandler) Earn(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.ledgerSvc.Credit)
}

func (h *PointsHandler) Spend(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.ledgerSvc.Debit)
}

type ledgerOp func(ctx context.Context, userID string, amount int32, description, details string) (int32, error)

func (h *PointsHandler) mutate(w http.ResponseWriter, r *http.Request, op ledgerOp) {
	userID, ok := GetUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req pointsMutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Description == "" {
		respondError(w, http.StatusBadRequest, "description is required")
		return
	}

	balance, err := op(r.Context(), userID, req.Points, req.Description, req.Details)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondOK(w, balance)
}

func (h *PointsHandler) ListExchanges(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	q := r.URL.Query()
	page := parseInt32(q.Get("page"), 1)
	pageSize := parseInt32(q.Get("page_size"), 20)

	records, total, err := h.redemptionSvc.ListRedemptions(r.Context(), userID,
		q.Get("product_id"), domain.RedemptionStatus(q.Get("status")), page, pageSize)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondOK(w, map[string]any{"records": records, "total": total})
}

func parseInt32(s string, def int32) int32 {
	if s == "" {
		return def
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n < 1 {
		return def
	}
	return int32(n)
}
