// Package dispatch decides which mini-event, if any, a fresh snapshot
// requires the player to resolve, and runs each event's wire protocol.
package dispatch

import "github.com/sugolab/probwalk/pkg/types"

type Kind string

const (
	KindNone          Kind = "none"
	KindMontyHall     Kind = "monty_hall"
	KindMaze          Kind = "maze"
	KindDiceSelection Kind = "dice_selection"
	KindSlot          Kind = "slot"
)

// PendingEvent is derived per snapshot and never cached across fetches.
type PendingEvent struct {
	Kind        Kind
	PlayerIndex int
	Player      types.PlayerView
}

// Detect picks the single event to surface, by fixed priority:
// Monty Hall > maze > dice selection > slot. When several flags are set only
// the highest wins; the rest stay latent and are re-derived from the next
// snapshot. The slot event is global, not tied to the current player's
// flags, and always ranks last.
func Detect(snap types.GameSnapshot) PendingEvent {
	none := PendingEvent{Kind: KindNone}
	if snap.IsOver {
		return none
	}
	idx := snap.CurrentPlayerIndex
	if idx < 0 || idx >= len(snap.Players) {
		return none
	}
	p := snap.Players[idx]
	switch {
	case p.IsInMontyHall:
		return PendingEvent{Kind: KindMontyHall, PlayerIndex: idx, Player: p}
	case p.IsInMaze:
		return PendingEvent{Kind: KindMaze, PlayerIndex: idx, Player: p}
	case p.NeedsDiceSelection:
		return PendingEvent{Kind: KindDiceSelection, PlayerIndex: idx, Player: p}
	case snap.IsSlotEventActive:
		// The event is global; when the server says whose spin is next,
		// the event carries that player instead of the current one.
		if next := snap.SlotNextPlayerIndex; next != nil && *next >= 0 && *next < len(snap.Players) {
			return PendingEvent{Kind: KindSlot, PlayerIndex: *next, Player: snap.Players[*next]}
		}
		return PendingEvent{Kind: KindSlot, PlayerIndex: idx, Player: p}
	}
	return none
}
