package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"karak-pos/internal/loyalty"
	"karak-pos/internal/order"
	"karak-pos/internal/pricing"
)

type cartItemRequest struct {
	Separator     bool                  `json:"separator,omitempty"`
	DrinkType     pricing.DrinkType     `json:"drinkType,omitempty"`
	CupType       pricing.CupType       `json:"cupType,omitempty"`
	Sugar         pricing.SugarLevel    `json:"sugar,omitempty"`
	TeaType       pricing.TeaType       `json:"teaType,omitempty"`
	ColdDrinkName pricing.ColdDrinkName `json:"coldDrinkName,omitempty"`
	SweetsOption  pricing.SweetsOption  `json:"sweetsOption,omitempty"`
	CustomPrice   *float64              `json:"customPrice,omitempty"`
	Quantity      int                   `json:"quantity,omitempty"`
}

type submitCartRequest struct {
	Items        []cartItemRequest `json:"items"`
	LicensePlate string            `json:"licensePlate,omitempty"`
	Notes        string            `json:"notes,omitempty"`
}

func (it cartItemRequest) toEntry() (order.CartEntry, error) {
	if it.Separator {
		return order.CartEntry{Separator: true}, nil
	}

	var attrs pricing.ItemAttrs
	switch {
	case it.DrinkType.IsHot():
		attrs = pricing.HotDrink{Type: it.DrinkType, Cup: it.CupType, Sugar: it.Sugar, Tea: it.TeaType}
	case it.DrinkType == pricing.DrinkCold:
		attrs = pricing.ColdDrink{Name: it.ColdDrinkName}
	case it.DrinkType == pricing.DrinkSweets:
		attrs = pricing.Sweets{Option: it.SweetsOption, CustomPrice: it.CustomPrice}
	default:
		return order.CartEntry{}, pricing.ErrUnknownDrinkType
	}
	return order.CartEntry{Attrs: attrs, Quantity: it.Quantity}, nil
}

func (s *Server) submitCart(w http.ResponseWriter, r *http.Request) {
	var req submitCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	entries := make([]order.CartEntry, 0, len(req.Items))
	for _, it := range req.Items {
		entry, err := it.toEntry()
		if err != nil {
			respondErr(w, err)
			return
		}
		entries = append(entries, entry)
	}

	orders, err := s.Orders.SubmitCart(r.Context(), entries, req.LicensePlate, req.Notes)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, orders)
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.Orders.List(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, orders)
}

func (s *Server) board(w http.ResponseWriter, r *http.Request) {
	board, err := s.Orders.Board(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, board)
}

func (s *Server) markReady(w http.ResponseWriter, r *http.Request) {
	if err := s.Orders.MarkReady(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "ready"})
}

type completeGroupRequest struct {
	IDs           []string            `json:"ids"`
	PaymentMethod order.PaymentMethod `json:"paymentMethod"`
}

type completeGroupResponse struct {
	Milestones []loyalty.Milestone `json:"milestones"`
}

func (s *Server) completeGroup(w http.ResponseWriter, r *http.Request) {
	var req completeGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	milestones, err := s.Orders.CompleteGroup(r.Context(), req.IDs, req.PaymentMethod)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, completeGroupResponse{Milestones: milestones})
}

type plateNotesRequest struct {
	LicensePlate string `json:"licensePlate"`
	Notes        string `json:"notes"`
}

func (s *Server) updatePlateNotes(w http.ResponseWriter, r *http.Request) {
	var req plateNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := s.Orders.UpdatePlateNotes(r.Context(), chi.URLParam(r, "id"), req.LicensePlate, req.Notes); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := s.Orders.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) autoSeparator(w http.ResponseWriter, r *http.Request) {
	inserted, err := s.Orders.EnsureAutoSeparator(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"inserted": inserted})
}
