// Package turn is the top-level state machine gating the roll and next-turn
// controls. One action is in flight at a time; intents arriving in the
// wrong phase are ignored, matching disabled buttons.
package turn

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sugolab/probwalk/internal/dispatch"
	"github.com/sugolab/probwalk/internal/gateway"
	"github.com/sugolab/probwalk/internal/session"
	"github.com/sugolab/probwalk/internal/ui"
	"github.com/sugolab/probwalk/pkg/types"
)

type Phase string

const (
	PhaseAwaitingStart   Phase = "awaiting_start"
	PhasePlayerTurnReady Phase = "player_turn_ready"
	PhaseRollInFlight    Phase = "roll_in_flight"
	PhaseEventHandling   Phase = "event_handling"
	PhaseTurnComplete    Phase = "turn_complete"
	PhaseGameOver        Phase = "game_over"
)

// Gateway is the slice of the server API the controller itself calls.
type Gateway interface {
	StartGame(ctx context.Context, numPlayers int, characters []string) (types.GameSnapshot, error)
	RollDice(ctx context.Context) (string, types.GameSnapshot, error)
	GameState(ctx context.Context) (types.GameSnapshot, error)
}

// EventRunner resolves one round of a pending event's protocol.
type EventRunner interface {
	Resolve(ctx context.Context, ev dispatch.PendingEvent) error
}

type Controller struct {
	phase  Phase
	gw     Gateway
	sess   *session.State
	runner EventRunner
	sink   ui.Sink
	log    *zap.Logger
}

func New(gw Gateway, sess *session.State, runner EventRunner, sink ui.Sink, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		phase:  PhaseAwaitingStart,
		gw:     gw,
		sess:   sess,
		runner: runner,
		sink:   sink,
		log:    log,
	}
}

func (c *Controller) Phase() Phase          { return c.phase }
func (c *Controller) RollEnabled() bool     { return c.phase == PhasePlayerTurnReady }
func (c *Controller) NextTurnEnabled() bool { return c.phase == PhaseTurnComplete }

func (c *Controller) announceTurn() {
	if p, ok := c.sess.CurrentPlayer(); ok {
		c.sink.Message(fmt.Sprintf("It's %s's turn. Roll the dice.", p.Name))
	}
}

func (c *Controller) gameOver() {
	c.phase = PhaseGameOver
	c.sink.Message("The game is over. Thanks for playing!")
}

// StartGame creates the session. On failure the controller stays in
// AwaitingStart so the caller may retry; the error is returned for the
// caller to decide what to do with.
func (c *Controller) StartGame(ctx context.Context, numPlayers int, characters []string) error {
	if c.phase != PhaseAwaitingStart {
		return nil
	}
	snap, err := c.gw.StartGame(ctx, numPlayers, characters)
	if err != nil {
		c.sink.Message(gateway.UserMessage(err))
		return err
	}
	c.sess.Apply(snap)
	c.log.Info("game started", zap.Int("players", len(snap.Players)))
	c.announceTurn()
	c.phase = PhasePlayerTurnReady
	return nil
}

// Roll plays the current player's roll and then drains pending events until
// none remain. A failed roll returns control to the player: message logged,
// phase back to ready.
func (c *Controller) Roll(ctx context.Context) error {
	switch c.phase {
	case PhasePlayerTurnReady:
	case PhaseGameOver:
		c.sink.Message("The game is already over.")
		return nil
	default:
		// Control is disabled in this phase; ignore the intent.
		return nil
	}

	c.phase = PhaseRollInFlight
	msg, snap, err := c.gw.RollDice(ctx)
	if err != nil {
		c.sink.Message(gateway.UserMessage(err))
		c.phase = PhasePlayerTurnReady
		// The server rejects rolls while an event flag is set, so a roll
		// failure may mean an aborted round left one behind. A fresh
		// snapshot re-derives it and the drain picks it back up.
		c.resync(ctx)
		return nil
	}
	if msg != "" {
		c.sink.Message(msg)
	}
	c.sess.Apply(snap)
	if snap.IsOver {
		c.gameOver()
		return nil
	}

	if ev := dispatch.Detect(snap); ev.Kind != dispatch.KindNone {
		c.phase = PhaseEventHandling
		c.handleEvents(ctx, ev)
		if c.phase == PhaseGameOver {
			return nil
		}
	}
	c.phase = PhaseTurnComplete
	return nil
}

// handleEvents loops resolve -> refetch -> re-detect until the snapshot is
// clean. A failed round aborts the loop without retrying; the server-side
// flag survives and the next settle picks it up again. Reports whether the
// snapshot ended clean with the game still running.
func (c *Controller) handleEvents(ctx context.Context, ev dispatch.PendingEvent) bool {
	for ev.Kind != dispatch.KindNone {
		if err := c.runner.Resolve(ctx, ev); err != nil {
			c.sink.Message(gateway.UserMessage(err))
			return false
		}
		snap, err := c.gw.GameState(ctx)
		if err != nil {
			c.sink.Message(gateway.UserMessage(err))
			return false
		}
		c.sess.Apply(snap)
		if snap.IsOver {
			c.gameOver()
			return false
		}
		ev = dispatch.Detect(snap)
	}
	return true
}

// resync fetches a fresh snapshot and settles the phase from it. A failed
// fetch keeps the current phase so the player can simply retry.
func (c *Controller) resync(ctx context.Context) {
	snap, err := c.gw.GameState(ctx)
	if err != nil {
		return
	}
	c.settle(ctx, snap)
}

// settle applies snap and derives the phase from it: game over, an event
// left pending by an earlier aborted round, or ready for the current
// player. A drained event has already advanced the turn server-side, so a
// clean finish lands in player_turn_ready; an aborted drain lands in
// turn_complete, where the next-turn control retries the drain.
func (c *Controller) settle(ctx context.Context, snap types.GameSnapshot) {
	c.sess.Apply(snap)
	if snap.IsOver {
		c.gameOver()
		return
	}
	if ev := dispatch.Detect(snap); ev.Kind != dispatch.KindNone {
		c.phase = PhaseEventHandling
		if !c.handleEvents(ctx, ev) {
			if c.phase != PhaseGameOver {
				c.phase = PhaseTurnComplete
			}
			return
		}
	}
	c.announceTurn()
	c.phase = PhasePlayerTurnReady
}

// NextTurn refreshes the snapshot and hands control to the new current
// player. Settling also drains any event a failed round left pending, so
// the control doubles as the retry for aborted events.
func (c *Controller) NextTurn(ctx context.Context) error {
	switch c.phase {
	case PhaseTurnComplete:
	case PhaseGameOver:
		c.sink.Message("The game is already over.")
		return nil
	default:
		return nil
	}

	snap, err := c.gw.GameState(ctx)
	if err != nil {
		// Stay in TurnComplete; the player can try again.
		c.sink.Message(gateway.UserMessage(err))
		return nil
	}
	c.settle(ctx, snap)
	return nil
}
