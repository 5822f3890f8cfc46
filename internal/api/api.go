package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"karak-pos/internal/alert"
	"karak-pos/internal/archive"
	"karak-pos/internal/auth"
	"karak-pos/internal/expense"
	"karak-pos/internal/ledger"
	"karak-pos/internal/logger"
	"karak-pos/internal/loyalty"
	"karak-pos/internal/middleware"
	"karak-pos/internal/order"
	"karak-pos/internal/pricing"
	"karak-pos/internal/report"
	"karak-pos/internal/shift"
	"karak-pos/internal/store"
)

// Server bundles every domain service behind the HTTP surface.
type Server struct {
	Auth      auth.Service
	Orders    order.Service
	Costs     pricing.Service
	Thermos   ledger.ThermosService
	Inventory ledger.InventoryService
	Timers    ledger.TimerService
	Loyalty   loyalty.Service
	Expenses  expense.Service
	Reports   report.Service
	Shift     shift.Service
	Archive   archive.Service
	Alerts    alert.Service
	Store     store.Store
}

// Router builds the full route table. Everything except the PIN gate
// and the websocket stream requires an unlocked device; the
// destructive surface requires the admin PIN.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORS)
	r.Use(logger.DeviceIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.RateLimit)
	r.Use(middleware.Auth(s.Auth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/unlock", s.unlock)
		r.Get("/ws", s.serveWS)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUnlocked)

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", s.submitCart)
				r.Get("/", s.listOrders)
				r.Get("/board", s.board)
				r.Post("/{id}/ready", s.markReady)
				r.Post("/complete", s.completeGroup)
				r.Put("/{id}/plate-notes", s.updatePlateNotes)
				r.Delete("/{id}", s.deleteOrder)
				r.Post("/auto-separator", s.autoSeparator)
			})

			r.Route("/thermos", func(r chi.Router) {
				r.Get("/", s.thermosState)
				r.Post("/{key}/adjust", s.thermosAdjust)
				r.Post("/{key}/refill", s.thermosRefill)
				r.Post("/{key}/reheat", s.thermosReheat)
				r.Post("/reset-refills", s.thermosResetRefills)
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", s.inventoryLevels)
				r.Post("/{key}/add", s.inventoryAdd)
			})

			r.Route("/timers", func(r chi.Router) {
				r.Get("/", s.timers)
				r.Post("/{type}/start", s.startTimer)
				r.Post("/{type}/stop", s.stopTimer)
			})

			r.Route("/loyalty", func(r chi.Router) {
				r.Get("/", s.loyaltyAll)
				r.Get("/{plate}", s.loyaltyPlate)
				r.Put("/{plate}/note", s.savePlateNote)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", s.listExpenses)
				r.Post("/", s.addExpense)
				r.Delete("/{id}", s.deleteExpense)
				r.Post("/restock", s.restock)
			})
			r.Get("/waste", s.listWaste)
			r.Post("/waste", s.logWaste)

			r.Route("/reports", func(r chi.Router) {
				r.Get("/summary", s.shiftSummary)
				r.Get("/day/{date}", s.dayReport)
				r.Get("/consumables", s.consumables)
				r.Get("/profit", s.netProfit)
				r.Get("/breakeven", s.breakeven)
				r.Get("/rush", s.rushHistogram)
			})

			r.Get("/costs", s.costs)

			r.Get("/shift/export", s.exportShift)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Put("/costs", s.updateCost)
			r.Put("/reports/breakeven", s.setBreakevenTarget)
			r.Post("/reports/rush/reset", s.resetRush)
			r.Post("/shift/import", s.importShift)
			r.Post("/shift/reset", s.resetShift)
			r.Post("/shift/archive", s.runArchive)
		})
	})

	return r
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondErr(w http.ResponseWriter, err error) {
	respond(w, errStatus(err), map[string]string{"error": err.Error()})
}

// errStatus maps domain sentinels onto HTTP codes so handlers stay
// free of status juggling.
func errStatus(err error) int {
	switch {
	case errors.Is(err, order.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrNotPreparing):
		return http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrEmptyGroup),
		errors.Is(err, order.ErrInvalidPayment),
		errors.Is(err, pricing.ErrInvalidInput),
		errors.Is(err, ledger.ErrUnknownThermos),
		errors.Is(err, ledger.ErrUnknownTimer),
		errors.Is(err, loyalty.ErrInvalidPlate),
		errors.Is(err, expense.ErrInvalidAmount),
		errors.Is(err, archive.ErrInvalidCutoff):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidPIN):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
