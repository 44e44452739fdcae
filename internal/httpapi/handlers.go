package httpapi

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/sugolab/probwalk/internal/engine"
	"github.com/sugolab/probwalk/internal/store"
	"github.com/sugolab/probwalk/pkg/types"
)

// Server exposes one game session over HTTP. The engine is not
// concurrency-safe, so every handler takes the lock.
type Server struct {
	mu       sync.Mutex
	game     *engine.Game
	recorded bool
	log      *zap.Logger
	store    *store.Store

	// NewRand lets tests pin the engine RNG.
	NewRand func() *rand.Rand
}

func NewServer(log *zap.Logger, st *store.Store) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{log: log, store: st, NewRand: engine.NewRNG}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.MessageResponse{Message: msg})
}

// writeEngineError maps engine sentinels to 400s with the message the
// clients surface verbatim.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrGameOver),
		errors.Is(err, engine.ErrEventPending),
		errors.Is(err, engine.ErrNotInMontyHall),
		errors.Is(err, engine.ErrNotInMaze),
		errors.Is(err, engine.ErrNoDiceSelection),
		errors.Is(err, engine.ErrSlotInactive),
		errors.Is(err, engine.ErrBadChoice),
		errors.Is(err, engine.ErrBadProbabilities):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error("handler failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// requireGame returns the active game or writes the standard 400.
func (s *Server) requireGame(w http.ResponseWriter) *engine.Game {
	if s.game == nil {
		writeMessage(w, http.StatusBadRequest, "The game has not been started.")
		return nil
	}
	return s.game
}

// recordIfFinished saves one row per finished game when a store is wired.
func (s *Server) recordIfFinished() {
	if s.store == nil || s.game == nil || !s.game.IsOver || s.recorded {
		return
	}
	s.recorded = true
	if err := s.store.SaveResult(s.game); err != nil {
		s.log.Warn("saving game record failed", zap.Error(err))
	}
}

func (s *Server) startGame(w http.ResponseWriter, r *http.Request) {
	var req types.StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.NumPlayers == 0 {
		req.NumPlayers = 2
	}
	if req.NumPlayers < 1 {
		writeMessage(w, http.StatusBadRequest, "num_players must be at least 1")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.game = engine.NewGame(req.NumPlayers, req.Characters, req.MaxTurns, s.NewRand())
	s.recorded = false
	s.log.Info("game started",
		zap.String("game_id", s.game.ID),
		zap.Int("players", req.NumPlayers),
		zap.Int("max_turns", s.game.MaxTurns))
	writeJSON(w, http.StatusOK, types.SnapshotResponse{
		Message:      "The game has started.",
		GameSnapshot: s.game.Snapshot(),
	})
}

func (s *Server) rollDice(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.requireGame(w)
	if g == nil {
		return
	}
	msg, err := g.Roll()
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.recordIfFinished()
	writeJSON(w, http.StatusOK, types.SnapshotResponse{Message: msg, GameSnapshot: g.Snapshot()})
}

func (s *Server) gameState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.requireGame(w)
	if g == nil {
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

func (s *Server) diceProbabilities(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.requireGame(w)
	if g == nil {
		return
	}
	writeJSON(w, http.StatusOK, types.DiceProbabilitiesResponse{Probabilities: g.DiceProbabilities()})
}

func (s *Server) eventPositions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.requireGame(w)
	if g == nil {
		return
	}
	writeJSON(w, http.StatusOK, types.EventPositionsResponse{EventPositions: g.EventPositions()})
}

func (s *Server) eventDescriptions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.requireGame(w)
	if g == nil {
		return
	}
	writeJSON(w, http.StatusOK, types.EventDescriptionsResponse{Events: g.EventDescriptions()})
}

func (s *Server) montyHall(w http.ResponseWriter, r *http.Request) {
	var req types.MontyHallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.requireGame(w)
	if g == nil {
		return
	}
	if req.Change != "" {
		msg, err := g.MontyHallSwitch(req.Change == "yes")
		if err != nil {
			s.writeEngineError(w, err)
			return
		}
		s.recordIfFinished()
		writeJSON(w, http.StatusOK, types.MontyHallResponse{Message: msg})
		return
	}
	msg, opened, err := g.MontyHallChoice(req.Choice)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.MontyHallResponse{Message: msg, OpenedDoor: &opened})
}

func (s *Server) mazeProgress(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.requireGame(w)
	if g == nil {
		return
	}
	msg, options, err := g.MazeProgress()
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	choices := make([]types.MazeChoice, len(options))
	for i, opt := range options {
		choices[i] = types.MazeChoice{Index: i, Description: opt.Description, Probability: opt.Probability}
	}
	writeJSON(w, http.StatusOK, types.MazeProgressResponse{Message: msg, Choices: choices})
}

func (s *Server) mazeChoice(w http.ResponseWriter, r *http.Request) {
	var req types.MazeChoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.requireGame(w)
	if g == nil {
		return
	}
	msg, err := g.SubmitMazeChoice(req.ChoiceIndex)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.recordIfFinished()
	writeMessage(w, http.StatusOK, msg)
}

func (s *Server) diceOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.DiceOptionsResponse{DiceOptions: engine.DiceOptionViews()})
}

func (s *Server) selectDice(w http.ResponseWriter, r *http.Request) {
	var req types.SelectDiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.requireGame(w)
	if g == nil {
		return
	}
	msg, err := g.SelectDice(req.DiceIndex)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, msg)
}

func (s *Server) slotOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.SlotOptionsResponse{SlotOptions: engine.SlotOptionViews()})
}

func (s *Server) spinSlot(w http.ResponseWriter, r *http.Request) {
	var req types.SpinSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.requireGame(w)
	if g == nil {
		return
	}
	msg, err := g.SpinSlot(req.SlotIndex)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.recordIfFinished()
	writeMessage(w, http.StatusOK, msg)
}

func (s *Server) setCustomDice(w http.ResponseWriter, r *http.Request) {
	var req types.CustomDiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	probs := make(map[int]float64, len(req.Probabilities))
	for face, p := range req.Probabilities {
		f, err := strconv.Atoi(face)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "dice faces must be numeric")
			return
		}
		probs[f] = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.requireGame(w)
	if g == nil {
		return
	}
	msg, err := g.SetCustomDice(probs)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, msg)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
