// Package ui defines the surfaces the orchestrator talks to instead of a
// real display: a Sink for output and a Prompter for event choices. The
// terminal implementations live here too; tests inject scripted fakes.
package ui

import (
	"context"

	"github.com/sugolab/probwalk/pkg/types"
)

// Sink consumes rendering output. Message lines accumulate like the message
// log of the original UI.
type Sink interface {
	Message(text string)
	RenderBoard(snap types.GameSnapshot, events []types.EventPosition)
	RenderDiceChart(probabilities map[string]float64)
}

// Prompter produces the player's decisions for the mini-events.
type Prompter interface {
	ChooseDoor(ctx context.Context, playerName string) (int, error)
	ChooseSwitch(ctx context.Context, openedDoor int) (bool, error)
	ChooseMazePath(ctx context.Context, message string, choices []types.MazeChoice) (int, error)
	ChooseDie(ctx context.Context, options []types.DiceOption) (int, error)
	ChooseSlot(ctx context.Context, playerName string, options []types.SlotOption) (int, error)
}
