package handlers

import (
	"encoding/json"
	"net/http"

	"kone-backend/internal/models"
	"kone-backend/internal/services"
)

type AuthHandler struct {
	Service *services.AuthService
}

func NewAuthHandler(s *services.AuthService) *AuthHandler {
	return &AuthHandler{Service: s}
}

// Login handles POST /api/auth/login. Sign-in failures come back as
// categorized JSON so the form can react per kind, not as bare error text.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	authResp, loginErr := h.Service.Login(r.Context(), &req)
	if loginErr != nil {
		status := http.StatusUnauthorized
		switch loginErr.Code {
		case services.LoginUnconfirmed:
			status = http.StatusForbidden
		case services.LoginUnavailable:
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]*models.LoginError{"error": loginErr})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(authResp)
}
