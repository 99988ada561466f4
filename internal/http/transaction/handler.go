package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/EverythingThatLivesIsGoneToWaste/FinanceApp/internal/auth"
	"github.com/EverythingThatLivesIsGoneToWaste/FinanceApp/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/balance", h.balance)
	r.Get("/analytics", h.analytics)
	r.Get("/analytics/monthly", h.monthlyAnalytics)
	r.Delete("/{id}", h.delete)
}

// callerID reads the identity placed in the context by the auth
// middleware. Routes are mounted behind it, so a miss is a wiring bug.
func callerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return 0, false
	}

	return userID, true
}

func writeError(w http.ResponseWriter, err error) {
	var valErr *transaction.ValidationError
	if errors.As(err, &valErr) {
		http.Error(w, valErr.Error(), http.StatusBadRequest)
		return
	}

	var nfErr *transaction.NotFoundError
	if errors.As(err, &nfErr) {
		http.Error(w, nfErr.Error(), http.StatusNotFound)
		return
	}

	slog.Error("request failed", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Create(r.Context(), userID, transaction.CreateParams{
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    req.Category,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	filters := transaction.Filters{
		Type:     r.URL.Query().Get("type"),
		Category: r.URL.Query().Get("category"),
		Month:    r.URL.Query().Get("month"),
	}

	txs, err := h.svc.List(r.Context(), userID, filters)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, toResponseList(txs))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	balance, err := h.svc.Balance(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	// A bare numeric body, the way the dashboard consumes it.
	w.Header().Set("Content-Type", "application/json")

	if _, err := w.Write([]byte(balance.String())); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func (h *Handler) analytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	analytics, err := h.svc.CategoryAnalytics(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, toAnalyticsResponse(analytics))
}

func (h *Handler) monthlyAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	summaries, err := h.svc.MonthlyAnalytics(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, toMonthlyResponse(summaries))
}
