package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	coreauth "github.com/EverythingThatLivesIsGoneToWaste/FinanceApp/internal/auth"
)

// Handler answers the frontend's token probe: a cheap authenticated
// endpoint that tells the client whether its stored token is still good.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/validate", h.validate)
}

type validateResponse struct {
	UserID int64 `json:"userId"`
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	userID, ok := coreauth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(validateResponse{UserID: userID}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
