package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/start_game", s.startGame)
	r.Post("/roll_dice", s.rollDice)
	r.Get("/get_game_state", s.gameState)
	r.Get("/get_dice_probabilities", s.diceProbabilities)
	r.Get("/get_event_positions", s.eventPositions)
	r.Get("/get_event_descriptions", s.eventDescriptions)
	r.Post("/monty_hall_choice", s.montyHall)
	r.Get("/maze_progress", s.mazeProgress)
	r.Post("/maze_progress", s.mazeChoice)
	r.Get("/get_dice_options", s.diceOptions)
	r.Post("/select_dice", s.selectDice)
	r.Get("/get_slot_options", s.slotOptions)
	r.Post("/spin_slot", s.spinSlot)
	r.Post("/set_custom_dice", s.setCustomDice)
	r.Get("/healthz", s.healthz)

	// Clients expect JSON message bodies even for routing errors.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return r
}
