package api

import (
	"encoding/json"
	"net/http"

	"karak-pos/internal/auth"
)

type unlockRequest struct {
	PIN string `json:"pin"`
}

type unlockResponse struct {
	Token string    `json:"token"`
	Role  auth.Role `json:"role"`
}

func (s *Server) unlock(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	token, role, err := s.Auth.Unlock(r.Context(), req.PIN)
	if err != nil {
		respondErr(w, err)
		return
	}

	// The web client works off the cookie; the token is also returned
	// for header-based callers.
	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respond(w, http.StatusOK, unlockResponse{Token: token, Role: role})
}
