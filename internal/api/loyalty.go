package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"karak-pos/internal/loyalty"
)

func (s *Server) loyaltyAll(w http.ResponseWriter, r *http.Request) {
	records, err := s.Loyalty.All(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, records)
}

type loyaltyPlateResponse struct {
	loyalty.Record
	Milestone bool               `json:"milestone"`
	Note      *loyalty.PlateNote `json:"note,omitempty"`
}

// loyaltyPlate is the order-entry hint: the visit count plus this
// week's note for a plate the operator just typed.
func (s *Server) loyaltyPlate(w http.ResponseWriter, r *http.Request) {
	plate := chi.URLParam(r, "plate")

	rec, err := s.Loyalty.Get(r.Context(), plate)
	if err != nil {
		respondErr(w, err)
		return
	}
	note, err := s.Loyalty.NoteForWeek(r.Context(), plate, time.Now())
	if err != nil {
		respondErr(w, err)
		return
	}

	respond(w, http.StatusOK, loyaltyPlateResponse{
		Record:    rec,
		Milestone: loyalty.IsMilestone(rec.Count),
		Note:      note,
	})
}

type plateNoteRequest struct {
	Note string `json:"note"`
}

func (s *Server) savePlateNote(w http.ResponseWriter, r *http.Request) {
	var req plateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := s.Loyalty.SaveNote(r.Context(), chi.URLParam(r, "plate"), req.Note, time.Now()); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "saved"})
}
